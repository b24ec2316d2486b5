package generator

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonalchemy/internal/config"
	"github.com/mcncl/jsonalchemy/internal/models"
)

// Generator renders model declarations as Flask-SQLAlchemy class source.
type Generator struct {
	output config.OutputConfig
}

// NewGenerator creates a Generator using the default db.Model layout.
func NewGenerator() *Generator {
	return &Generator{output: config.NewConfig().Output}
}

// NewGeneratorWithConfig creates a Generator using cfg's output settings.
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{output: cfg.Output}
}

// Generate returns the declaration text for model: a class header, the
// __tablename__ assignment, then one column line per column in order.
func (g *Generator) Generate(model models.ModelDef) string {
	var b Builder

	if header := strings.TrimRight(g.output.FileHeader, "\n"); header != "" {
		for _, line := range strings.Split(header, "\n") {
			b.Line("%s", line)
		}
		b.Blank()
	}

	b.Line("class %s(%s):", model.ClassName, g.output.BaseModel)
	b.Indent()
	b.Line("__tablename__ = %s", model.TableName)
	for _, column := range model.Columns {
		g.writeColumn(&b, column)
	}
	b.Dedent()

	return b.String()
}

func (g *Generator) writeColumn(b *Builder, column models.ColumnDef) {
	line := fmt.Sprintf("%s = %s(%s%s)", column.Name, g.output.ColumnFunc, g.output.TypeNamespace, column.Type)
	if column.Comment != "" {
		line += "  # " + column.Comment
	}
	b.Line("%s", line)
}
