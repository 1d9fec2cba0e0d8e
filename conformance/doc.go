// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package conformance provides a stand-in engine for testing the operator
// bindings without a real DPF installation. It registers every operator of
// the embedded catalog with the catalog's pin specification and default
// configuration, backed by kernels that echo connected inputs to the
// outputs that can hold them.
//
// The entry point is [RegisterOperators], which registers all catalog
// operators on an [engine.Server].
package conformance
