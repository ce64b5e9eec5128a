package xlate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/codegen"
	"github.com/kolkov/xlate/internal/compiler"
	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/lexer"
	"github.com/kolkov/xlate/internal/parser"
	"github.com/kolkov/xlate/internal/semantic"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/verify"
)

// Version is the xlate version string.
const Version = "0.1.0"

// Language identifies a source or target language.
type Language = token.Language

// Supported languages.
const (
	Python = token.Python
	Java   = token.Java
	Cpp    = token.Cpp
)

// ParseLanguage converts a name such as "python", "java", "cpp" or one
// of the common aliases ("py", "c++") to a Language.
func ParseLanguage(name string) (Language, bool) {
	return token.ParseLanguage(name)
}

// Translator runs translation jobs with a fixed configuration.
// It holds no per-job state and is safe for concurrent use.
type Translator struct {
	cfg Config
}

// New returns a Translator. A nil config uses the defaults.
func New(config *Config) *Translator {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return &Translator{cfg: cfg}
}

var defaultTranslator = New(nil)

// Translate converts source from one language to another with the
// default configuration.
//
// Example:
//
//	res := xlate.Translate("def add(a, b):\n    return a + b\n", xlate.Python, xlate.Java)
//	if !res.Success {
//	    log.Fatal(res.Err())
//	}
//	fmt.Print(res.TargetCode)
func Translate(source string, from, to Language) *Result {
	return defaultTranslator.Translate(source, from, to)
}

// Translate runs one job. It never returns nil and never panics:
// every failure becomes a fatal diagnostic on the Result.
func (t *Translator) Translate(source string, from, to Language) *Result {
	return t.TranslateContext(context.Background(), source, from, to)
}

// TranslateContext is Translate with a context for the verify stage.
func (t *Translator) TranslateContext(ctx context.Context, source string, from, to Language) *Result {
	j := &job{cfg: &t.cfg, res: &Result{}, from: from, to: to}
	j.run(ctx, source)

	res := j.res
	res.Diagnostics = j.diags
	res.Success = !j.diags.HasErrors()
	if !res.Success {
		res.TargetCode = ""
	}
	res.Fingerprint = fingerprint(res.TargetCode, res.AST, res.IR)
	return res
}

// job is the state of one translation.
type job struct {
	cfg      *Config
	res      *Result
	diags    diag.List
	from, to Language
}

func (j *job) run(ctx context.Context, source string) {
	defer func() {
		if r := recover(); r != nil {
			j.fail(diag.IR, token.NoPos, &InternalError{Message: fmt.Sprint(r)})
		}
	}()

	if !j.from.IsValid() || !j.to.IsValid() {
		err := fmt.Errorf("%w: %v to %v", ErrUnsupportedLanguage, j.from, j.to)
		j.fail(diag.Parse, token.NoPos, err)
		return
	}

	var prog *ast.Program
	err := j.stage("parse", func() (err error) {
		prog, err = parser.Parse(j.from, source)
		return err
	})
	if err != nil {
		j.classify(err)
		return
	}
	j.res.AST = ast.Dump(prog)

	var info *semantic.Info
	err = j.stage("semantic", func() error {
		var warnings diag.List
		var err error
		info, warnings, err = semantic.CheckWith(prog, j.from, semantic.Options{StrictPython: j.cfg.StrictPython})
		j.diags = append(j.diags, warnings...)
		return err
	})
	if err != nil {
		j.classify(err)
		return
	}

	var lowered *ir.Program
	err = j.stage("ir", func() (err error) {
		lowered, err = compiler.Compile(prog, info)
		return err
	})
	if err != nil {
		j.classify(err)
		return
	}
	j.res.IR = ir.Dump(lowered)

	gen := codegen.NewWithOptions(j.to, codegen.Options{
		IndentWidth: j.cfg.IndentWidth,
		ClassName:   j.cfg.JavaClassName,
	})
	_ = j.stage("codegen", func() error {
		j.res.TargetCode = gen.Generate(lowered)
		return nil
	})

	if j.cfg.Verify {
		_ = j.stage("verify", func() error {
			problems, err := verify.Check(ctx, j.to, j.res.TargetCode)
			if err != nil {
				j.diags.Warnf(diag.Verify, token.NoPos, "%v", err)
				return nil
			}
			j.diags = append(j.diags, problems...)
			return nil
		})
	}
}

// stage runs fn and logs how long it took.
func (j *job) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	j.cfg.Logger.Debug("stage",
		slog.String("stage", name),
		slog.String("from", j.from.String()),
		slog.String("to", j.to.String()),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil),
	)
	return err
}

// classify converts a stage error into its public type and records it.
func (j *job) classify(err error) {
	var (
		le *lexer.Error
		pe *parser.ParseError
		se *semantic.Error
		ue *compiler.UnsupportedConstructError
	)
	switch {
	case errors.As(err, &le):
		j.fail(diag.Lex, le.Pos, &LexError{Line: le.Pos.Line, Column: le.Pos.Column, Message: le.Message})
	case errors.As(err, &pe):
		j.fail(diag.Parse, pe.Pos, &SyntaxError{
			Line:     pe.Pos.Line,
			Column:   pe.Pos.Column,
			Message:  pe.Message,
			Expected: pe.Want,
			Found:    pe.Got,
		})
	case errors.As(err, &se):
		j.fail(diag.Semantic, se.Pos, &SemanticError{Line: se.Pos.Line, Column: se.Pos.Column, Message: se.Message})
	case errors.As(err, &ue):
		j.fail(diag.IR, ue.Pos, &UnsupportedConstructError{Line: ue.Pos.Line, Column: ue.Pos.Column, Construct: ue.Construct})
	default:
		j.fail(diag.IR, token.NoPos, &InternalError{Message: err.Error()})
	}
}

// fail records err as the job's fatal error.
func (j *job) fail(stage diag.Stage, pos token.Position, err error) {
	if j.res.err == nil {
		j.res.err = err
	}
	msg := err.Error()
	switch e := err.(type) {
	case *LexError:
		msg = e.Message
	case *SyntaxError:
		msg = e.Message
	case *SemanticError:
		msg = e.Message
	case *UnsupportedConstructError:
		msg = "unsupported construct: " + e.Construct
	}
	j.diags.Add(diag.New(diag.Error, stage, pos, msg))
	j.cfg.Logger.Debug("failed", slog.String("stage", stage.String()), slog.Any("error", err))
}
