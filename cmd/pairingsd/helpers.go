/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/bbp-pairings/swiss"
)

type jsonResponse map[string]any

// readBody returns the request body, bounded by maxBytes. Oversized or
// unreadable bodies are reported as input errors.
func readBody(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &swiss.InputError{
				Msg: fmt.Sprintf("body must not be larger than %d bytes", maxBytes),
			}
		}
		return nil, &swiss.InputError{Msg: fmt.Sprintf("unable to read body: %v", err)}
	}
	if len(body) == 0 {
		return nil, &swiss.InputError{Msg: "body must not be empty"}
	}

	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		logrus.Errorf("pairingsd.write: failed to marshal resp: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		logrus.Warnf("pairingsd.write: failed to write resp: %v", err)
	}
}

// writeError maps input errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var inErr *swiss.InputError
	if errors.As(err, &inErr) {
		logrus.Debugf("pairingsd.%v: rejected input: %v", r.URL.Path, err)
		writeJSON(w, http.StatusBadRequest,
			jsonResponse{"detail": fmt.Sprintf("Invalid input: %v", err)})
		return
	}

	logrus.Errorf("pairingsd.%v: %v", r.URL.Path, err)
	writeJSON(w, http.StatusInternalServerError,
		jsonResponse{"detail": fmt.Sprintf("Internal error: %v", err)})
}
