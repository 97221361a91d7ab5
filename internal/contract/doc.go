// Package contract declares the form schema of every create, edit, report
// and request screen, and decodes validated form values into the typed
// requests the service layer accepts.
//
// Schemas are shared by the TUI form views and the CLI subcommands so
// both surfaces enforce identical rules.
package contract
