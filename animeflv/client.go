// Package animeflv provides a typed client for the unofficial AnimeFLV catalog API.
package animeflv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anilens-cli/anilens/constant"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/log"
	"github.com/anilens-cli/anilens/network"
	"github.com/anilens-cli/anilens/util"
	"github.com/spf13/viper"
)

// envelope is the response convention shared by every endpoint:
// {success: bool, data: ...}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// proxied prefixes the target with the relay proxy when enabled. The relay is
// a transparent text prefix, not a parameterized redirect.
func proxied(target string) string {
	if viper.GetBool(key.APIProxyEnabled) {
		return viper.GetString(key.APIProxy) + target
	}
	return target
}

// fetch performs a single-shot GET against the catalog API. No retries: a
// failure of the relay or the upstream surfaces as a TransportError.
func fetch(target string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, proxied(target), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		log.Errorf("catalog request failed: %v", err)
		return nil, &TransportError{Err: err}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Errorf("catalog request to %s returned %d", target, resp.StatusCode)
		return nil, &TransportError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}

// fetchData fetches a target and unwraps its envelope, requiring success:true
// and a present data field.
func fetchData(target string) (json.RawMessage, error) {
	body, err := fetch(target)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedError{Reason: "response envelope", Err: err}
	}
	if env.Success == nil || !*env.Success {
		return nil, &MalformedError{Reason: "envelope indicates failure"}
	}
	if env.Data == nil {
		return nil, &MalformedError{Reason: "data field missing"}
	}
	return env.Data, nil
}

// Search executes a text or browse query and returns one normalized result
// page. A 404 and an explicit success:false are legitimate empty results on
// this endpoint, not errors; every other failure keeps its type so the caller
// can distinguish transport from payload problems.
func Search(text string, f filter.State, page int) (PagedSummaries, error) {
	req := BuildSearchRequest(text, f, page)
	log.Infof("catalog %s query, page %d", req.Mode, page)

	body, err := fetch(req.URL)
	if err != nil {
		var t *TransportError
		if errors.As(err, &t) && t.Status == http.StatusNotFound {
			return EmptyPage(), nil
		}
		return EmptyPage(), err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return EmptyPage(), &MalformedError{Reason: "response envelope", Err: err}
	}
	if env.Success != nil && !*env.Success {
		return EmptyPage(), nil
	}
	if env.Success == nil || env.Data == nil {
		return EmptyPage(), &MalformedError{Reason: "envelope indicates failure"}
	}

	return normalizeSearch(env.Data)
}

// Details fetches and normalizes one series, injecting the requested slug as
// identity. Unlike search, every failure here is a hard error.
func Details(slug string) (*SeriesDetail, error) {
	log.Infof("fetching details for %s", slug)

	data, err := fetchData(fmt.Sprintf("%s/anime/%s", viper.GetString(key.APIBaseURL), slug))
	if err != nil {
		return nil, err
	}
	return normalizeDetail(data, slug)
}

// EpisodeServers fetches the ordered embed server list for one episode.
func EpisodeServers(episodeSlug string) ([]Server, error) {
	log.Infof("fetching servers for episode %s", episodeSlug)

	data, err := fetchData(fmt.Sprintf("%s/anime/episode/%s", viper.GetString(key.APIBaseURL), episodeSlug))
	if err != nil {
		return nil, err
	}
	return normalizeServers(data)
}

// LatestEpisodes fetches the sitewide latest-episodes feed.
func LatestEpisodes() ([]LatestEpisode, error) {
	log.Info("fetching latest episodes feed")

	data, err := fetchData(fmt.Sprintf("%s/list/latest-episodes", viper.GetString(key.APIBaseURL)))
	if err != nil {
		return nil, err
	}
	return normalizeLatest(data)
}

// Ping probes API reachability through the configured relay, discarding the
// payload. Used by the check command.
func Ping() error {
	_, err := fetch(fmt.Sprintf("%s/list/latest-episodes", viper.GetString(key.APIBaseURL)))
	return err
}
