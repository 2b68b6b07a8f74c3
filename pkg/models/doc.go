// Package models provides the shared data types for backendgen.
//
// The central type is [AnswerSet], the immutable record of the choices a user
// made in the wizard. Every later stage (planning, emitting, installing,
// manifest patching) reads it; none of them writes it.
//
// # Database choice
//
// Exactly one database is selected per run:
//
//	db := models.DatabasePrisma
//	if db.IsValid() {
//	    fmt.Println("ORM:", db.UsesORM())
//	}
//
// # Feature flags
//
// Boolean features are addressed by [Feature] name so tables (questions,
// dependency catalog, file gates) can refer to them uniformly:
//
//	a.Enabled(models.FeatureExpress)
package models
