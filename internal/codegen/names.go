// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

var initialisms = map[string]string{
	"fc":  "FC",
	"fft": "FFT",
	"id":  "ID",
	"rpm": "RPM",
	"vtk": "VTK",
}

// GoName turns a snake_case engine name into an exported Go identifier.
// Characters that cannot appear in identifiers split words.
func GoName(s string) string {
	var b strings.Builder
	for _, part := range words(s) {
		if up, ok := initialisms[strings.ToLower(part)]; ok {
			b.WriteString(up)
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// lowerName is GoName with the first word lower-cased, for unexported
// identifiers.
func lowerName(s string) string {
	parts := words(s)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[0]) + GoName(strings.Join(parts[1:], "_"))
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

type typeInfo struct {
	constant string // Go expression of the type name
	goType   string
	suffix   string // accessor suffix for multi-type outputs
}

var knownTypes = map[string]typeInfo{
	dpf.TypeBool:          {"dpf.TypeBool", "bool", "Bool"},
	dpf.TypeInt32:         {"dpf.TypeInt32", "int32", "Int32"},
	dpf.TypeDouble:        {"dpf.TypeDouble", "float64", "Double"},
	dpf.TypeString:        {"dpf.TypeString", "string", "String"},
	dpf.TypeVectorInt32:   {"dpf.TypeVectorInt32", "[]int32", "VectorInt32"},
	dpf.TypeVectorDouble:  {"dpf.TypeVectorDouble", "[]float64", "VectorDouble"},
	dpf.TypeDataSources:   {"dpf.TypeDataSources", "dpf.DataSources", "DataSources"},
	dpf.TypeField:         {"dpf.TypeField", "dpf.Field", "Field"},
	dpf.TypeFieldsCont:    {"dpf.TypeFieldsCont", "dpf.FieldsContainer", "FieldsContainer"},
	dpf.TypeMeshedRegion:  {"dpf.TypeMeshedRegion", "dpf.MeshedRegion", "MeshedRegion"},
	dpf.TypeMeshesCont:    {"dpf.TypeMeshesCont", "dpf.MeshesContainer", "MeshesContainer"},
	dpf.TypeScoping:       {"dpf.TypeScoping", "dpf.Scoping", "Scoping"},
	dpf.TypeScopingsCont:  {"dpf.TypeScopingsCont", "dpf.ScopingsContainer", "ScopingsContainer"},
	dpf.TypeStreamsCont:   {"dpf.TypeStreamsCont", "dpf.StreamsContainer", "StreamsContainer"},
	dpf.TypeResultInfo:    {"dpf.TypeResultInfo", "dpf.ResultInfo", "ResultInfo"},
	dpf.TypeTimeFreq:      {"dpf.TypeTimeFreq", "dpf.TimeFreqSupport", "TimeFreqSupport"},
	dpf.TypeMaterials:     {"dpf.TypeMaterials", "dpf.Materials", "Materials"},
	dpf.TypeCyclicSupport: {"dpf.TypeCyclicSupport", "dpf.CyclicSupport", "CyclicSupport"},
}

// lookupType describes an engine type name. Types without a named handle
// are read as dpf.Entity.
func lookupType(t string) typeInfo {
	if info, ok := knownTypes[t]; ok {
		return info
	}
	return typeInfo{constant: strconv.Quote(t), goType: "dpf.Entity", suffix: GoName(t)}
}
