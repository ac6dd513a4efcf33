// Ganymede validates tabular datasets against declarative schemas.
//
// Usage:
//
//	# Validate a CSV file against a schema
//	ganymede check --schema schema.yaml data.csv
//
//	# Validate a SQLite table
//	ganymede check --schema schema.yaml --table orders data.db
//
//	# Collect every failure instead of stopping at the first
//	ganymede check --schema schema.yaml --lazy data.csv
//
//	# Validate a schema file without data
//	ganymede lint --schema schema.yaml
//
//	# Inspect recorded validation runs
//	ganymede reports --db data/reports.db --dataset orders
//
//	# Show version information
//	ganymede version
package main

func main() {
	Execute()
}
