// Package patterns loads the declarative rule document that drives
// classification and compiles it into a read-only Table.
//
// A document has four sections:
//   - typical_files: tag -> filename regexps that mark a whole directory
//   - filenames: ordered {tags, pattern} rules for individual entries
//   - extensions: tag -> file extensions
//   - synonyms: alias -> canonical tags, used to expand user tag filters
//
// YAML is the default format; files ending in .toml are read as TOML.
package patterns
