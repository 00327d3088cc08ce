package database

// Schema and query code generation:
//   go generate ./internal/database
//
// generate_schema applies the migrations to an in-memory database and dumps
// the result into sqlc/schema.sql, which sqlc then reads.

//go:generate sh -c "cd ../.. && go run internal/database/tools/generate_schema.go"
//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
