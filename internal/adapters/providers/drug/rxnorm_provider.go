package drug

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

const (
	defaultRxNormBaseURL = "https://rxnav.nlm.nih.gov/REST"
	defaultHTTPTimeout   = 8 * time.Second
)

// RxNormProvider implements the DrugNormalizationProvider using the RxNav RxNorm API.
type RxNormProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewRxNormProvider creates a new RxNorm drug normalization provider.
func NewRxNormProvider() providers.DrugNormalizationProvider {
	return NewRxNormProviderWithOptions(defaultRxNormBaseURL, nil)
}

// NewRxNormProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewRxNormProviderWithOptions(baseURL string, httpClient *http.Client) providers.DrugNormalizationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultRxNormBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &RxNormProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// FindCandidates looks up drug concept matches by name.
func (p *RxNormProvider) FindCandidates(ctx context.Context, name string) ([]providers.DrugCandidate, error) {
	params := url.Values{}
	params.Set("name", name)

	var payload drugsResponse
	if err := p.doRequest(ctx, "/drugs.json", params, &payload); err != nil {
		return nil, err
	}

	var candidates []providers.DrugCandidate
	for _, group := range payload.DrugGroup.ConceptGroup {
		for _, concept := range group.ConceptProperties {
			if concept.RxCUI == "" {
				continue
			}
			candidates = append(candidates, providers.DrugCandidate{
				RxCUI: concept.RxCUI,
				Name:  concept.Name,
			})
		}
	}
	return candidates, nil
}

// SpellingSuggestions returns ranked spelling alternatives for an unmatched name.
func (p *RxNormProvider) SpellingSuggestions(ctx context.Context, name string) ([]string, error) {
	params := url.Values{}
	params.Set("name", name)

	var payload spellingSuggestionsResponse
	if err := p.doRequest(ctx, "/spellingsuggestions.json", params, &payload); err != nil {
		return nil, err
	}

	return payload.SuggestionGroup.SuggestionList.Suggestion, nil
}

func (p *RxNormProvider) doRequest(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.NewUpstreamError("failed to build rxnorm request", 0, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError("rxnorm request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewUpstreamError(
			fmt.Sprintf("rxnorm request returned status %d", resp.StatusCode),
			resp.StatusCode, nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewUpstreamError("failed to decode rxnorm response", 0, err)
	}
	return nil
}

type drugsResponse struct {
	DrugGroup struct {
		ConceptGroup []struct {
			TTY               string `json:"tty"`
			ConceptProperties []struct {
				RxCUI string `json:"rxcui"`
				Name  string `json:"name"`
			} `json:"conceptProperties"`
		} `json:"conceptGroup"`
	} `json:"drugGroup"`
}

type spellingSuggestionsResponse struct {
	SuggestionGroup struct {
		SuggestionList struct {
			Suggestion []string `json:"suggestion"`
		} `json:"suggestionList"`
	} `json:"suggestionGroup"`
}
