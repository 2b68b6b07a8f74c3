package wizard

import (
	"github.com/backendgen/backendgen/internal/core/project"
	"github.com/backendgen/backendgen/pkg/models"
)

// Question IDs that are not feature names.
const (
	IDProjectName = "project_name"
	IDDatabase    = "database"
)

// ProjectNameQuestion asks for the project directory. It runs before the
// target directory is checked, so it is separate from StackQuestions.
func ProjectNameQuestion() Question {
	return Question{
		ID:          IDProjectName,
		Type:        QuestionTypeInput,
		Title:       "Enter your project name",
		Description: `Use "." to generate into the current folder.`,
		Default:     models.DefaultProjectName,
		Required:    true,
		Validate:    project.ValidateProjectName,
	}
}

// StackQuestions returns the technology questions in the order they are asked.
func StackQuestions() []Question {
	databases := make([]Option, 0, len(models.AllDatabases()))
	for _, db := range models.AllDatabases() {
		databases = append(databases, Option{Label: string(db), Value: string(db)})
	}

	return []Question{
		confirm(models.FeatureExpress, "Do you want to use Express?", "Web framework with a /health route."),
		confirm(models.FeatureCORS, "Do you want to use CORS?", "Allows cross-origin requests with credentials."),
		confirm(models.FeatureTypeScript, "Do you want to use TypeScript?", "Adds the compiler and @types packages."),
		{
			ID:          IDDatabase,
			Type:        QuestionTypeSelect,
			Title:       "Choose a database",
			Description: "Prisma targets PostgreSQL; Mongoose targets MongoDB.",
			Options:     databases,
			Default:     string(models.DatabasePrisma),
			Required:    true,
		},
		confirm(models.FeatureZod, "Do you want to use Zod?", "Schema validation with an example schema."),
		confirm(models.FeatureBcrypt, "Do you want to use bcrypt?", "Password hashing."),
		confirm(models.FeatureJSONWebToken, "Do you want to use JSON Web Tokens?", "Cookie-based auth middleware and a JWT secret in .env."),
	}
}

func confirm(f models.Feature, title, desc string) Question {
	return Question{
		ID:          string(f),
		Type:        QuestionTypeConfirm,
		Title:       title,
		Description: desc,
		Default:     "true",
	}
}
