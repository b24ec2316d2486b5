// Package emitter converts a JSON document into a Flask-SQLAlchemy model
// declaration in one call.
//
// The only failure is invalid JSON. It is reported in Result.Error with
// the decoder's message and an empty Result.Code; Emit never returns a Go
// error or panics on bad input.
package emitter

import (
	stderrors "errors"

	"github.com/mcncl/jsonalchemy/internal/analyzer"
	"github.com/mcncl/jsonalchemy/internal/config"
	"github.com/mcncl/jsonalchemy/internal/errors"
	"github.com/mcncl/jsonalchemy/internal/generator"
	"github.com/mcncl/jsonalchemy/internal/models"
	"github.com/mcncl/jsonalchemy/internal/parser"
	"github.com/skillian/logging"
)

var logger = logging.GetLogger("jsonalchemy")

// Result is the outcome of one Emit call. Exactly one of Code and Error is
// non-empty.
type Result struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// Emitter holds the configuration applied to every Emit call. It keeps no
// per-call state and is safe for concurrent use.
type Emitter struct {
	config *config.Config
}

// New creates an Emitter with default configuration.
func New() *Emitter {
	return &Emitter{config: config.NewConfig()}
}

// NewWithConfig creates an Emitter with custom configuration. cfg should
// already have passed Validate so its patterns are compiled before the
// Emitter is shared.
func NewWithConfig(cfg *config.Config) *Emitter {
	return &Emitter{config: cfg}
}

// Emit converts jsonText using default configuration.
func Emit(jsonText, typeNameHint string) Result {
	return New().Emit(jsonText, typeNameHint)
}

// Emit converts jsonText into declaration text. An empty typeNameHint
// falls back to the configured table name.
func (e *Emitter) Emit(jsonText, typeNameHint string) Result {
	model, err := e.Model(jsonText, typeNameHint)
	if err != nil {
		logger.Debug1("emit failed: %v", err)
		return Result{Code: "", Error: Message(err)}
	}
	return Result{Code: generator.NewGeneratorWithConfig(e.config).Generate(model)}
}

// Model runs the parse and analysis steps of Emit and returns the model
// before it is rendered.
func (e *Emitter) Model(jsonText, typeNameHint string) (models.ModelDef, error) {
	if !e.config.Types.PreserveFloatLiterals {
		jsonText = parser.RewriteFloatLiterals(jsonText)
	}

	ir, err := parser.ParseString(jsonText)
	if err != nil {
		return models.ModelDef{}, err
	}

	model := analyzer.NewAnalyzerWithConfig(e.config).Analyze(ir, typeNameHint)
	logger.Debug1("analyzed %d top-level fields", len(model.Columns))
	return model, nil
}

// Message returns the text shown to users for err: the parser's own
// message for application errors, err.Error() otherwise.
func Message(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
