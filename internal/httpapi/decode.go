package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo-backend/internal/model"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var errPayloadTooLarge = errors.New("payload too large")

//go:embed todo.schema.json
var todoSchemaJSON string

var todoSchema = jsonschema.MustCompileString("todo.schema.json", todoSchemaJSON)

// decodeTodoPatch reads a todo body, validates it against todo.schema.json
// and decodes it. id and url are accepted but ignored.
func (s *Server) decodeTodoPatch(r *http.Request) (model.TodoPatch, error) {
	body, err := readBody(r, s.maxBodyBytes)
	if err != nil {
		return model.TodoPatch{}, err
	}

	doc, err := decodeJSON(body)
	if err != nil {
		return model.TodoPatch{}, err
	}
	if err := todoSchema.Validate(doc); err != nil {
		return model.TodoPatch{}, schemaError(err)
	}

	var in model.TodoPatch
	if err := json.Unmarshal(body, &in); err != nil {
		return model.TodoPatch{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return in, nil
}

// decodeJSON decodes a single JSON value keeping numbers as json.Number,
// which is what the schema validator expects.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: multiple JSON values")
	}
	return v, nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	lr := io.LimitReader(r.Body, limit+1)

	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, errors.New("failed to read body")
	}
	if int64(len(b)) > limit {
		return nil, errPayloadTooLarge
	}
	return b, nil
}

// schemaError reports the first leaf cause, which names the offending field.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("invalid todo: %w", err)
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if field == "" {
		return fmt.Errorf("invalid todo: %s", ve.Message)
	}
	return fmt.Errorf("invalid todo: %s: %s", field, ve.Message)
}
