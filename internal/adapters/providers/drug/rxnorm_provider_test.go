package drug

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medfind/medfinder/pkg/errors"
)

func TestRxNormProvider_FindCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drugs.json", r.URL.Path)
		assert.Equal(t, "Amoxicillin", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"drugGroup": {
				"name": "Amoxicillin",
				"conceptGroup": [
					{"tty": "BN"},
					{"tty": "SCD", "conceptProperties": [
						{"rxcui": "308182", "name": "amoxicillin 250 MG Oral Capsule"},
						{"rxcui": "308191", "name": "amoxicillin 500 MG Oral Tablet"}
					]}
				]
			}
		}`))
	}))
	defer server.Close()

	provider := NewRxNormProviderWithOptions(server.URL, nil)

	candidates, err := provider.FindCandidates(context.Background(), "Amoxicillin")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "308182", candidates[0].RxCUI)
	assert.Equal(t, "amoxicillin 250 MG Oral Capsule", candidates[0].Name)
	assert.Equal(t, "308191", candidates[1].RxCUI)
}

func TestRxNormProvider_FindCandidates_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"drugGroup": {"name": null}}`))
	}))
	defer server.Close()

	provider := NewRxNormProviderWithOptions(server.URL, nil)

	candidates, err := provider.FindCandidates(context.Background(), "Notadrug")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRxNormProvider_SpellingSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spellingsuggestions.json", r.URL.Path)
		assert.Equal(t, "Amoxicilin", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"suggestionGroup": {
				"name": "Amoxicilin",
				"suggestionList": {"suggestion": ["Amoxicillin", "Amoxapine"]}
			}
		}`))
	}))
	defer server.Close()

	provider := NewRxNormProviderWithOptions(server.URL, nil)

	suggestions, err := provider.SpellingSuggestions(context.Background(), "Amoxicilin")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amoxicillin", "Amoxapine"}, suggestions)
}

func TestRxNormProvider_UpstreamStatusPreserved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewRxNormProviderWithOptions(server.URL, nil)

	_, err := provider.FindCandidates(context.Background(), "Amoxicillin")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.UpstreamStatus)
}

func TestRxNormProvider_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := NewRxNormProviderWithOptions(server.URL, nil)

	_, err := provider.SpellingSuggestions(context.Background(), "Amoxicillin")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.Zero(t, appErr.UpstreamStatus)
}
