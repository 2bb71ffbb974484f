// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
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

	"github.com/gin-gonic/gin"

	"github.com/sirseerhq/hacktoberfest-checker/internal/eligibility"
	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/internal/metadata"
)

// PRsResponse is the body of GET /prs.
type PRsResponse struct {
	Username string                 `json:"username"`
	PRs      []eligibility.PRRecord `json:"prs"`
	Summary  *metadata.Summary      `json:"summary"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleGetPRs(c *gin.Context) {
	username := c.Query("github_user")
	if username == "" {
		writeError(c, http.StatusBadRequest, errors.New("github_user query parameter is required"))
		return
	}

	ctx := c.Request.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	result, err := s.checker.Check(ctx, username)
	if err != nil {
		status := statusForError(err)
		s.log.Warnw("check failed",
			"username", username,
			"status", status,
			"request_id", c.GetString(requestIDKey),
			"error", err)
		writeError(c, status, err)
		return
	}

	c.JSON(http.StatusOK, PRsResponse{
		Username: username,
		PRs:      result.Records,
		Summary:  result.Summary,
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusClientClosedRequest is logged when the caller disconnected before
// the check finished. Nobody reads the response.
const statusClientClosedRequest = 499

// statusForError maps a check error onto the HTTP status returned to the
// caller. A rejected token is the server's fault, so it is a 502 rather
// than a 401.
func statusForError(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, hfcerrors.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, hfcerrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, hfcerrors.ErrRateLimit):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func writeError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		RequestID: c.GetString(requestIDKey),
	})
}
