// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

// Custom metadata keys carried on Arrow IPC record batches.
const (
	MetaMethod         = "dpf.method"
	MetaRequestVersion = "dpf.request_version"
	MetaRequestID      = "dpf.request_id"
	MetaLogLevel       = "dpf.log_level"
	MetaLogMessage     = "dpf.log_message"
	MetaLogExtra       = "dpf.log_extra"
	MetaServerID       = "dpf.server_id"
	MetaProtocolName   = "dpf.protocol_name"
	MetaCatalogVersion = "dpf.catalog_version"

	ProtocolVersion = "1"
	CatalogVersion  = "1"
)

// Method names understood by the engine.
const (
	MethodCreate        = "operator.create"
	MethodConnect       = "operator.connect"
	MethodEvaluate      = "operator.evaluate"
	MethodRun           = "operator.run"
	MethodRelease       = "operator.release"
	MethodDefaultConfig = "operator.default_config"
	MethodSpecification = "operator.specification"
	MethodDescribe      = "__describe__"
)
