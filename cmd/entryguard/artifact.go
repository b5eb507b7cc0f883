package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/smartbch/entryguard/types"
)

var errNoBytecode = errors.New("artifact has no bytecode")

type artifact struct {
	Bytecode json.RawMessage `json:"bytecode"`
}

type bytecodeObject struct {
	Object string `json:"object"`
}

func findLine(data []byte, offset int64) (line int) {
	line = 1
	for i, r := range string(data) {
		if int64(i) >= offset {
			return
		}
		if r == '\n' {
			line++
		}
	}
	return
}

func readJSON(reader io.Reader, value interface{}) error {
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("error reading JSON file: %v", err)
	}
	if err = json.Unmarshal(data, value); err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			line := findLine(data, syntaxErr.Offset)
			return fmt.Errorf("JSON syntax error at line %v: %v", line, err)
		}
		return err
	}
	return nil
}

// parseArtifact extracts the deployment bytecode from a compiler artifact.
// Both "bytecode": "0x..." and "bytecode": {"object": "..."} are accepted.
func parseArtifact(reader io.Reader) (types.Bytes, error) {
	var a artifact
	if err := readJSON(reader, &a); err != nil {
		return nil, err
	}
	if len(a.Bytecode) == 0 {
		return nil, errNoBytecode
	}
	var hexCode string
	if err := json.Unmarshal(a.Bytecode, &hexCode); err != nil {
		var obj bytecodeObject
		if err := json.Unmarshal(a.Bytecode, &obj); err != nil {
			return nil, fmt.Errorf("bytecode is neither a string nor an object: %v", err)
		}
		hexCode = obj.Object
	}
	if hexCode == "" {
		return nil, errNoBytecode
	}
	return types.FromHex(strings.TrimSpace(hexCode))
}

func readArtifactFile(fn string) (types.Bytes, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	code, err := parseArtifact(file)
	if err != nil {
		return nil, fmt.Errorf("%w in file %s", err, fn)
	}
	return code, nil
}
