package defs

import "os"

// Common file names used across the project.
const (
	// PackageJSON is the npm manifest written by the package manager's init step.
	PackageJSON = "package.json"

	// DotEnv is the generated environment file.
	DotEnv = ".env"

	// TSConfigJSON is the generated TypeScript compiler configuration.
	TSConfigJSON = "tsconfig.json"

	// PrismaSchema is the ORM schema path, relative to the project root.
	PrismaSchema = "prisma/schema.prisma"

	// ConfigYAML is the backendgen user configuration file name.
	ConfigYAML = "config.yaml"

	// AppDirName is the directory under the user config dir holding ConfigYAML.
	AppDirName = "backendgen"
)

// Permissions for generated content.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)
