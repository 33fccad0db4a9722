package enhance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/record"
)

const (
	// DefaultTimeout bounds a single generation-time enhancement call.
	DefaultTimeout = 10 * time.Second

	generationMaxTokens = 500
	styleMaxTokens      = 800
	temperature         = 0.7
)

// Enhancer produces enhanced section prose through a Capability. It is safe
// for concurrent use.
type Enhancer struct {
	cap     Capability
	timeout time.Duration
	logger  *zap.Logger
}

// NewEnhancer creates an enhancer over the given capability. timeout <= 0
// selects DefaultTimeout; logger may be nil.
func NewEnhancer(cap Capability, timeout time.Duration, logger *zap.Logger) *Enhancer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enhancer{cap: cap, timeout: timeout, logger: logger}
}

// Enhance rewrites bound section content during assembly. On any failure the
// original content is returned along with the error so callers can fall back.
func (e *Enhancer) Enhance(ctx context.Context, sectionTitle, content, instructions string, rec record.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := generationPrompt(sectionTitle, content, instructions, rec)
	enhanced, err := e.cap.Complete(ctx, prompt, generationMaxTokens, temperature)
	if err != nil {
		return content, &EnhanceError{Message: fmt.Sprintf("enhancement failed for section %q", sectionTitle), Cause: err}
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return content, &EnhanceError{Message: fmt.Sprintf("empty enhancement for section %q", sectionTitle)}
	}
	return enhanced, nil
}

// StyleRequest describes a post-generation enhancement of one stored section.
type StyleRequest struct {
	SectionTitle     string
	Content          string
	Request          string
	ApplicationName  string
	OrganizationName string
	ApplicationID    string
}

// StyleResult carries the enhanced content. Warning is set when the model
// dropped placeholder tokens that were present before enhancement; the
// content is still returned as produced.
type StyleResult struct {
	Content string
	Warning string
}

// EnhanceWithStyle applies a named style (or free-form request) to stored
// section content. Placeholder tokens present in the input are checked
// against the output; missing ones produce a warning, not an error.
func (e *Enhancer) EnhanceWithStyle(ctx context.Context, req StyleRequest) (*StyleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := stylePrompt(req.Request, req.SectionTitle, req.Content,
		req.ApplicationName, req.OrganizationName, req.ApplicationID)

	enhanced, err := e.cap.Complete(ctx, prompt, styleMaxTokens, temperature)
	if err != nil {
		return nil, &EnhanceError{Message: fmt.Sprintf("enhancement failed for section %q", req.SectionTitle), Cause: err}
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		enhanced = req.Content
	}

	result := &StyleResult{Content: enhanced}
	if missing := missingTokens(req.Content, enhanced); len(missing) > 0 {
		result.Warning = fmt.Sprintf("enhanced content no longer contains placeholders: %s", strings.Join(missing, ", "))
		e.logger.Warn("enhancement dropped placeholders",
			zap.String("section", req.SectionTitle),
			zap.Strings("missing", missing))
	}
	return result, nil
}
