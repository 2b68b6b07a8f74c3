package models

import (
	"maps"
	"slices"
)

// CurrentDirSentinel is the project name that means "scaffold into the
// current working directory" instead of a named subdirectory.
const CurrentDirSentinel = "."

// DefaultProjectName is offered as the default answer to the name question.
const DefaultProjectName = "my-backend-app"

// Feature names a boolean generation option.
type Feature string

const (
	FeatureExpress      Feature = "express"
	FeatureCORS         Feature = "cors"
	FeatureTypeScript   Feature = "typescript"
	FeatureZod          Feature = "zod"
	FeatureBcrypt       Feature = "bcrypt"
	FeatureJSONWebToken Feature = "jsonwebtoken"
)

// AllFeatures returns every boolean feature in question order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureExpress,
		FeatureCORS,
		FeatureTypeScript,
		FeatureZod,
		FeatureBcrypt,
		FeatureJSONWebToken,
	}
}

// IsValid reports whether f is a known feature.
func (f Feature) IsValid() bool {
	return slices.Contains(AllFeatures(), f)
}

// Database is the single-choice database/ORM option.
type Database string

const (
	DatabasePrisma   Database = "PostgreSQL (Prisma)"
	DatabaseMongoose Database = "MongoDB (Mongoose)"
)

// AllDatabases returns the database choices in the order they are offered.
func AllDatabases() []Database {
	return []Database{DatabasePrisma, DatabaseMongoose}
}

// IsValid reports whether d is one of the supported choices.
func (d Database) IsValid() bool {
	return d == DatabasePrisma || d == DatabaseMongoose
}

// UsesORM reports whether the choice needs the ORM init step and scripts.
func (d Database) UsesORM() bool {
	return d == DatabasePrisma
}

// Key returns a short identifier used by the dependency catalog.
func (d Database) Key() string {
	switch d {
	case DatabasePrisma:
		return "prisma"
	case DatabaseMongoose:
		return "mongoose"
	default:
		return ""
	}
}

// AnswerSet holds the user's selections. Build it with NewAnswerSet; the
// accessors never expose internal state, so a value cannot change after the
// wizard returns it.
type AnswerSet struct {
	projectName string
	features    map[Feature]bool
	database    Database
}

// NewAnswerSet builds an AnswerSet. Unknown feature keys are ignored.
func NewAnswerSet(projectName string, features map[Feature]bool, db Database) AnswerSet {
	fs := make(map[Feature]bool, len(features))
	for k, v := range features {
		if k.IsValid() {
			fs[k] = v
		}
	}
	return AnswerSet{projectName: projectName, features: fs, database: db}
}

// ProjectName returns the raw project-name answer.
func (a AnswerSet) ProjectName() string { return a.projectName }

// InPlace reports whether the project name is the current-directory sentinel.
func (a AnswerSet) InPlace() bool { return a.projectName == CurrentDirSentinel }

// Enabled reports whether feature f was selected.
func (a AnswerSet) Enabled(f Feature) bool { return a.features[f] }

// Database returns the selected database.
func (a AnswerSet) Database() Database { return a.database }

// Features returns a copy of the feature selections.
func (a AnswerSet) Features() map[Feature]bool {
	out := make(map[Feature]bool, len(a.features))
	maps.Copy(out, a.features)
	return out
}

// Shorthand accessors, mostly for templates.

func (a AnswerSet) Express() bool      { return a.Enabled(FeatureExpress) }
func (a AnswerSet) CORS() bool         { return a.Enabled(FeatureCORS) }
func (a AnswerSet) TypeScript() bool   { return a.Enabled(FeatureTypeScript) }
func (a AnswerSet) Zod() bool          { return a.Enabled(FeatureZod) }
func (a AnswerSet) Bcrypt() bool       { return a.Enabled(FeatureBcrypt) }
func (a AnswerSet) JSONWebToken() bool { return a.Enabled(FeatureJSONWebToken) }
