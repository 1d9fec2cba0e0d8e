// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package operators

//go:generate go run ../cmd/dpfgen -catalog catalog.hcl -out .
