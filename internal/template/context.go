package template

import (
	"github.com/backendgen/backendgen/pkg/models"
)

// DefaultJWTSecretVar is the environment variable holding the token signing secret.
const DefaultJWTSecretVar = "JWT_SECRET"

// DefaultJWTSecretValue is the placeholder secret written to .env.
const DefaultJWTSecretValue = "your_jwt_secret"

// DefaultPort is the port the generated server listens on when PORT is unset.
const DefaultPort = 3000

// TemplateContext provides data for rendering project templates.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	// Answers is the full wizard selection. Templates call its accessor
	// methods, e.g. {{ if .Answers.Express }}.
	Answers models.AnswerSet

	// Database branch helpers
	UsesPrisma bool
	UsesMongo  bool

	// Environment
	Port           int
	JWTSecretVar   string
	JWTSecretValue string
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext creates a TemplateContext with defaults, then applies
// any provided options.
func NewTemplateContext(opts ...ContextOption) *TemplateContext {
	ctx := &TemplateContext{
		Port:           DefaultPort,
		JWTSecretVar:   DefaultJWTSecretVar,
		JWTSecretValue: DefaultJWTSecretValue,
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// WithAnswers sets the wizard answers and the database branch helpers.
func WithAnswers(a models.AnswerSet) ContextOption {
	return func(c *TemplateContext) {
		c.Answers = a
		c.UsesPrisma = a.Database() == models.DatabasePrisma
		c.UsesMongo = a.Database() == models.DatabaseMongoose
	}
}
