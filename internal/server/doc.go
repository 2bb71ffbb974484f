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

// Package server exposes eligibility checks over HTTP.
//
// Routes:
//
//	GET /prs?github_user=<login>   eligible pull requests and the check summary
//	GET /healthz                   liveness probe
//	GET /metrics                   Prometheus exposition
//
// Every request passes through panic recovery, request ID assignment
// (X-Request-ID), zap request logging and Prometheus instrumentation.
package server
