package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ppiankov/orgresolve/internal/extract"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// SuggestNames proposes registered-name variants for a partial query
	SuggestNames(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SuggestRequest contains the input for name suggestion
type SuggestRequest struct {
	// Query is the user's partial organization name
	Query string

	// Count is the number of variants wanted
	Count int

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SuggestResponse contains the provider's name variants
type SuggestResponse struct {
	// Names are the accepted variants, normalized and de-duplicated
	Names []string

	// Rejected are lines dropped by strict root checking
	Rejected []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictRoot drops any suggestion that does not contain the query root
	StrictRoot bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:   "", // Disabled by default
		Timeout:    30,
		StrictRoot: true,
		MaxTokens:  300,
	}
}

// BuildPrompt constructs the default prompt for name suggestion
func BuildPrompt(query string, count int) string {
	return fmt.Sprintf(`用户正在搜索一家中国企业，输入的是不完整的名称："%s"。

请给出 %d 个最可能的完整工商注册名称。

要求：
1. 每行一个名称，不要编号，不要解释。
2. 每个名称必须包含"%s"。
3. 名称以合法的企业组织形式结尾，例如"有限公司"或"股份有限公司"。
4. 不要编造与输入无关的企业。`, query, count, Root(query))
}

// Root returns the part of query every suggestion must contain: the query
// without legal-form suffixes, or the query itself when stripping empties it
func Root(query string) string {
	root := extract.StripSuffixes(query)
	if root == "" {
		return extract.Normalize(query)
	}
	return root
}

// ParseNames splits a completion into candidate names. Numbering, bullets
// and surrounding quotes are removed; lines without script characters are
// dropped.
func ParseNames(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeftFunc(line, func(r rune) bool {
			return unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(".、)-*•", r)
		})
		line = strings.Trim(line, "\"'“”「」 ")
		line = extract.Normalize(line)
		if line == "" || !extract.HasScript(line) || seen[line] {
			continue
		}
		seen[line] = true
		names = append(names, line)
	}
	return names
}

// filterRoot splits names into those containing root and the rest
func filterRoot(names []string, root string) (kept, rejected []string) {
	for _, n := range names {
		if strings.Contains(n, root) {
			kept = append(kept, n)
		} else {
			rejected = append(rejected, n)
		}
	}
	return kept, rejected
}

const systemPrompt = "You propose plausible Chinese company registration names. Output one name per line and nothing else."

// resolve fills request defaults from the provider config
func (c Config) resolve(req SuggestRequest) (count int, prompt string, maxTokens int) {
	count = req.Count
	if count <= 0 {
		count = 5
	}
	prompt = req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Query, count)
	}
	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 300
	}
	return count, prompt, maxTokens
}

// collect parses a completion into at most count names, applying the
// root check when StrictRoot is set
func (c Config) collect(query, text string, count int) *SuggestResponse {
	names := ParseNames(strings.TrimSpace(text))
	var rejected []string
	if c.StrictRoot {
		names, rejected = filterRoot(names, Root(query))
	}
	if len(names) > count {
		names = names[:count]
	}
	return &SuggestResponse{Names: names, Rejected: rejected}
}
