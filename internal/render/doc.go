// Package render turns a release.VersionInfo into the text of a generated
// module. The output flavor is chosen by the target file extension:
// .ts and .mjs produce ES module exports plus a default aggregate export,
// .js and .cjs produce CommonJS property exports.
package render
