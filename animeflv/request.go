// Package animeflv provides a typed client for the unofficial AnimeFLV catalog API.
package animeflv

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/log"
	"github.com/spf13/viper"
)

// Mode distinguishes the two structurally different query endpoints the
// upstream exposes. Free text and faceted browsing are mutually exclusive;
// text wins whenever both are present.
type Mode int

const (
	ModeText Mode = iota
	ModeBrowse
)

func (m Mode) String() string {
	if m == ModeText {
		return "text"
	}
	return "browse"
}

// Request describes one catalog query, resolved to the API target URL.
// The relay proxy prefix is applied later, at fetch time.
type Request struct {
	Mode Mode
	URL  string
}

// browseIndex is the public index whose URL grammar the by-url endpoint
// re-parses server-side. The filters are expressed as its query parameters.
const browseIndex = "https://animeflv.net/browse"

// BuildSearchRequest maps a single internal filter state onto whichever of
// the two query encodings applies.
//
// Non-empty text selects the plain text-search endpoint and ignores the
// structured facets entirely. Otherwise a browse index URL is constructed
// facet by facet, skipping sentinels, and wrapped into the by-url endpoint.
// The page number is always appended, 1-based.
func BuildSearchRequest(text string, f filter.State, page int) Request {
	base := viper.GetString(key.APIBaseURL)

	if text != "" {
		params := url.Values{}
		params.Set("query", text)
		params.Set("page", strconv.Itoa(page))
		return Request{
			Mode: ModeText,
			URL:  fmt.Sprintf("%s/search?%s", base, params.Encode()),
		}
	}

	params := url.Values{}
	if f.Genre != filter.All {
		params.Add("genre[]", f.Genre)
	}
	if f.Type != filter.All {
		params.Add("type[]", f.Type)
	}
	if f.Status != filter.All {
		if code, ok := filter.StatusCode(f.Status); ok {
			params.Add("status[]", strconv.Itoa(code))
		} else {
			// Untranslatable status is dropped, never sent raw upstream.
			log.Warnf("dropping unknown status filter %q", f.Status)
		}
	}
	if f.Order != filter.DefaultOrder {
		params.Set("order", f.Order)
	}
	params.Set("page", strconv.Itoa(page))

	target := fmt.Sprintf("%s?%s", browseIndex, params.Encode())
	return Request{
		Mode: ModeBrowse,
		URL:  fmt.Sprintf("%s/search/by-url?url=%s", base, url.QueryEscape(target)),
	}
}
