//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the repticare project using Mage.
//
// Usage:
//
//	mage build          Compile the repticare binary to bin/
//	mage test:all       Run all tests
//	mage test:cover     Run all tests with a coverage profile
//	mage test:postgres  Run store tests against a throwaway Postgres container
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install repticare to GOPATH/bin
//	mage serve          Build and serve the JSON API on the configured address
package main
