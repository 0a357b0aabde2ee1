// Package all wires the built-in storage backends into the storage factory.
//
// Importing it for side effects makes the "csv" and "tsv" kinds available to
// storage.New:
//
//	import _ "github.com/22chandu94/DragonsDashboard/internal/storage/all"
package all

import (
	_ "github.com/22chandu94/DragonsDashboard/internal/storage/flatfile"
)
