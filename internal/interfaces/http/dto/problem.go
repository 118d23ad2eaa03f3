// Package dto holds the wire shapes shared by the HTTP handlers and
// middleware.
package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"golang.org/x/text/language"
)

// ProblemContentType is the media type of error bodies
const ProblemContentType = "application/problem+json"

// DefaultProblemType is used when no type URL is configured
const DefaultProblemType = "about:blank"

// InvalidParam names one rejected request field
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Problem is the error body returned by every endpoint
type Problem struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	InvalidParams []InvalidParam `json:"invalid-params,omitempty"`
}

// Problems renders localized problem bodies
type Problems struct {
	translator *i18n.Translator
	typeURL    string
}

// NewProblems creates a renderer. An empty typeURL falls back to
// DefaultProblemType.
func NewProblems(translator *i18n.Translator, typeURL string) *Problems {
	if typeURL == "" {
		typeURL = DefaultProblemType
	}
	return &Problems{translator: translator, typeURL: typeURL}
}

// Language negotiates the response language from Accept-Language
func (p *Problems) Language(c *gin.Context) language.Tag {
	return p.translator.Match(c.GetHeader("Accept-Language"))
}

// Translate renders key in the request language
func (p *Problems) Translate(c *gin.Context, key string, args ...any) string {
	return p.translator.Sprintf(p.Language(c), key, args...)
}

// Build assembles a problem with a translated title
func (p *Problems) Build(c *gin.Context, status int, titleKey string, params ...InvalidParam) Problem {
	return Problem{
		Type:          p.typeURL,
		Title:         p.Translate(c, titleKey),
		Status:        status,
		InvalidParams: params,
	}
}

// Params translates violations into invalid-params entries, keeping order
func (p *Problems) Params(c *gin.Context, violations shared.Violations) []InvalidParam {
	lang := p.Language(c)
	params := make([]InvalidParam, 0, len(violations))
	for _, v := range violations {
		params = append(params, InvalidParam{
			Name:   v.Name,
			Reason: p.translator.Sprintf(lang, v.Code, v.Args...),
		})
	}
	return params
}

// Abort writes the problem and stops the handler chain
func (p *Problems) Abort(c *gin.Context, status int, titleKey string, params ...InvalidParam) {
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(status, p.Build(c, status, titleKey, params...))
}
