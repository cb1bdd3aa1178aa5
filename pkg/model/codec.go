package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDecodeClasses is returned when a classes document cannot be decoded.
	ErrDecodeClasses = errors.New("decode classes document")
	// ErrDecodeMethods is returned when an endpoints document cannot be decoded.
	ErrDecodeMethods = errors.New("decode endpoints document")
)

// encode writes v as indented JSON without HTML escaping. Struct fields are
// declared alphabetically and encoding/json sorts map keys, so the output is
// stable across runs.
func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EncodeClasses writes the name → TransferClass mapping.
func EncodeClasses(w io.Writer, classes map[string]*TransferClass) error {
	if classes == nil {
		classes = map[string]*TransferClass{}
	}
	return encode(w, classes)
}

// EncodeMethods writes the ResourceMethod sequence.
func EncodeMethods(w io.Writer, methods []*ResourceMethod) error {
	if methods == nil {
		methods = []*ResourceMethod{}
	}
	return encode(w, methods)
}

// EncodeDebug writes extraction diagnostics.
func EncodeDebug(w io.Writer, messages []string) error {
	if messages == nil {
		messages = []string{}
	}
	return encode(w, messages)
}

// MarshalClasses is EncodeClasses into a byte slice.
func MarshalClasses(classes map[string]*TransferClass) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeClasses(&buf, classes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalMethods is EncodeMethods into a byte slice.
func MarshalMethods(methods []*ResourceMethod) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeMethods(&buf, methods); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalDebug is EncodeDebug into a byte slice.
func MarshalDebug(messages []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeDebug(&buf, messages); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeClasses reads a name → TransferClass mapping.
func DecodeClasses(data []byte) (map[string]*TransferClass, error) {
	var classes map[string]*TransferClass
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeClasses, err)
	}
	if classes == nil {
		classes = map[string]*TransferClass{}
	}
	return classes, nil
}

// DecodeMethods reads a ResourceMethod sequence.
func DecodeMethods(data []byte) ([]*ResourceMethod, error) {
	var methods []*ResourceMethod
	if err := json.Unmarshal(data, &methods); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeMethods, err)
	}
	return methods, nil
}
