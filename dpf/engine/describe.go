// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// ProtocolName identifies this engine in describe metadata.
const ProtocolName = "GoDpfEngine"

var describeSchema = arrow.NewSchema([]arrow.Field{
	{Name: dpf.DescribeColumnName, Type: arrow.BinaryTypes.String},
	{Name: dpf.DescribeColumnDescription, Type: arrow.BinaryTypes.String},
	{Name: dpf.DescribeColumnSpecification, Type: arrow.BinaryTypes.String},
	{Name: dpf.DescribeColumnConfig, Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

// buildDescribeBatch builds the __describe__ response batch, one row per
// registered operator.
func (s *Server) buildDescribeBatch() arrow.RecordBatch {
	mem := memory.NewGoAllocator()
	regs := s.registrations()

	nameBuilder := array.NewStringBuilder(mem)
	defer nameBuilder.Release()
	descBuilder := array.NewStringBuilder(mem)
	defer descBuilder.Release()
	specBuilder := array.NewStringBuilder(mem)
	defer specBuilder.Release()
	configBuilder := array.NewStringBuilder(mem)
	defer configBuilder.Release()

	for _, reg := range regs {
		nameBuilder.Append(reg.Name)
		descBuilder.Append(reg.Specification.Description())

		specJSON, err := json.Marshal(reg.Specification)
		if err != nil {
			slog.Error("engine: failed to marshal specification", "operator", reg.Name, "err", err)
			specJSON = []byte("{}")
		}
		specBuilder.Append(string(specJSON))

		if reg.DefaultConfig == nil {
			configBuilder.AppendNull()
			continue
		}
		configJSON, err := json.Marshal(reg.DefaultConfig)
		if err != nil {
			slog.Error("engine: failed to marshal default config", "operator", reg.Name, "err", err)
			configBuilder.AppendNull()
			continue
		}
		configBuilder.Append(string(configJSON))
	}

	cols := []arrow.Array{
		nameBuilder.NewArray(),
		descBuilder.NewArray(),
		specBuilder.NewArray(),
		configBuilder.NewArray(),
	}
	for _, c := range cols {
		defer c.Release()
	}

	keys := []string{dpf.MetaProtocolName, dpf.MetaRequestVersion, dpf.MetaCatalogVersion}
	vals := []string{ProtocolName, dpf.ProtocolVersion, dpf.CatalogVersion}
	if s.serverID != "" {
		keys = append(keys, dpf.MetaServerID)
		vals = append(vals, s.serverID)
	}
	return array.NewRecordBatchWithMetadata(describeSchema, cols, int64(len(regs)), arrow.NewMetadata(keys, vals))
}

// serveDescribe writes the describe batch as a complete response stream.
func (s *Server) serveDescribe(w io.Writer, _ *dpf.Request, stats *dpf.CallStatistics) error {
	batch := s.buildDescribeBatch()
	defer batch.Release()
	stats.RecordResponse(1, dpf.BatchBufferSize(batch))

	writer := ipc.NewWriter(w, ipc.WithSchema(describeSchema))
	if err := writer.Write(batch); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
