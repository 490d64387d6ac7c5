// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
	"github.com/nutrihelp/nutrihelp-api/pkg/serializer"

	"github.com/google/uuid"
)

// internalErrorMessage replaces 5xx messages when running in production.
const internalErrorMessage = "Internal Server Error"

// hideInternalErrors is set by New from Config.Production.
var hideInternalErrors atomic.Bool

func setProduction(on bool) {
	hideInternalErrors.Store(on)
}

// ErrorResponse is the body of every error returned by the server.
// Success is always false and Error mirrors Message for clients that only
// read the legacy fields.
type ErrorResponse struct {
	Success   bool           `json:"success"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Error     string         `json:"error"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	if statusCode >= http.StatusInternalServerError && hideInternalErrors.Load() {
		message = internalErrorMessage
		details = nil
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Success:   false,
		Code:      string(code),
		Message:   message,
		Error:     message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to a status code and writes it. Structured
// errors keep their code, message and context; anything else becomes an
// internal error carrying fallbackMsg.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string, details map[string]any) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		WriteError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidRequest,
			"Request body too large", false, mergeDetails(details, map[string]any{"limit": maxBytesErr.Limit}))
		return
	}

	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		extra := map[string]any{}
		if se.Cause != nil {
			extra["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), mergeDetails(mergeDetails(se.Context, details), extra))
		return
	}

	code := apperrors.ErrCodeInternal
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.ErrCodeTimeout
	}
	WriteError(w, r, HTTPStatusFromCode(code), code, fallbackMsg, retryableFromCode(code),
		mergeDetails(details, map[string]any{"error": err.Error()}))
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeInternal, apperrors.ErrCodeDirectoryCreation,
		apperrors.ErrCodeListing, apperrors.ErrCodeEntryAccess:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeUnavailable, apperrors.ErrCodeRateLimitExceeded,
		apperrors.ErrCodeInternal, apperrors.ErrCodeConflict,
		apperrors.ErrCodeListing, apperrors.ErrCodeEntryAccess:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with the entries of a then b.
// Keys in b win. It returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
