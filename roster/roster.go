/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mikeb26/bbp-pairings/internal"
	"github.com/mikeb26/bbp-pairings/swiss"
)

// maxSnapshotBytes bounds what we are willing to read from a file or URL.
const maxSnapshotBytes = 8 << 20

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads a tournament snapshot from a local file or an http(s) URL.
func Load(ctx context.Context, client *http.Client,
	src string) (*swiss.Tournament, error) {

	var data []byte
	var err error
	if isURL(src) {
		data, err = fetchBytes(ctx, client, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", src, err)
	}

	t, err := swiss.ParseTournament(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", src, err)
	}

	return t, nil
}

func fetch(ctx context.Context, client *http.Client,
	url string) (*http.Response, error) {

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return resp, nil
}

func fetchBytes(ctx context.Context, client *http.Client,
	url string) ([]byte, error) {

	resp, err := fetch(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
}
