package testcase

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// A case file is a sequence of lines, one command per line:
//
//	test <name>
//	code <0xhex | count b0 b1 ...>
//	entrypoint <0xaddr>
//	profile strict|solc
//	bypass
//	rewrite-error <text>
//	call <0xcaller> <0xinput> [value]
//	expect success|revert|invalid|error [0xoutput]
//	kv <0xslot> <0xvalue>
//
// Blank lines and lines starting with '#' are ignored. expect and kv apply
// to the most recent call.

type Call struct {
	Caller [20]byte
	Input  []byte
	Value  uint256.Int
	Expect string
	Output []byte // nil means the output is not checked
	Values map[[32]byte][32]byte
}

func (c *Call) BigValue() *big.Int {
	return c.Value.ToBig()
}

type TestCase struct {
	Name         string
	Code         []byte
	Entrypoint   [20]byte
	Profile      string
	Bypass       bool
	RewriteError string
	Calls        []*Call
}

func NewTestCase(s string) TestCase {
	tc := TestCase{Name: s, Profile: "strict"}
	for i := range tc.Entrypoint {
		tc.Entrypoint[i] = 0xff
	}
	return tc
}

func fillBytes(tokens []string, data *[]byte) ([]string, error) {
	if len(tokens) == 0 {
		return nil, errors.New("missing bytes")
	}
	if strings.HasPrefix(tokens[0], "0x") {
		var err error
		*data, err = hex.DecodeString(tokens[0][2:])
		if err != nil {
			return nil, err
		}
		return tokens[1:], nil
	}
	size, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	tokens = tokens[1:]
	if len(tokens) < size {
		return nil, fmt.Errorf("want %d bytes, got %d", size, len(tokens))
	}
	*data = make([]byte, 0, size)
	for i := 0; i < size; i++ {
		c, err := strconv.Atoi(tokens[0])
		tokens = tokens[1:]
		if err != nil {
			return nil, err
		}
		if !(0 <= c && c <= 255) {
			return nil, fmt.Errorf("byte %d out of range", c)
		}
		*data = append(*data, uint8(c))
	}
	return tokens, nil
}

// fillSliceFromHex right-aligns a 0x-prefixed hex number into arr.
func fillSliceFromHex(tokens []string, arr []byte) ([]string, error) {
	if len(tokens) == 0 {
		return nil, errors.New("missing hex value")
	}
	s := strings.TrimPrefix(tokens[0], "0x")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	bz, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(bz) > len(arr) {
		return nil, fmt.Errorf("%s does not fit in %d bytes", tokens[0], len(arr))
	}
	for i := range arr {
		arr[i] = 0
	}
	copy(arr[len(arr)-len(bz):], bz)
	return tokens[1:], nil
}

func fillUInt256(tokens []string, v *uint256.Int) ([]string, error) {
	bigInt := &big.Int{}
	if _, ok := bigInt.SetString(tokens[0], 10); !ok {
		return nil, fmt.Errorf("invalid uint256 %q", tokens[0])
	}
	u, overflow := uint256.FromBig(bigInt)
	if overflow {
		return nil, fmt.Errorf("uint256 overflow %q", tokens[0])
	}
	v.Set(u)
	return tokens[1:], nil
}

func ReadTestCasesFromString(str string) ([]TestCase, error) {
	return readTestCases(strings.NewReader(str))
}

func ReadTestCases(filename string) ([]TestCase, error) {
	infile, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer infile.Close()
	result, err := readTestCases(infile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return result, nil
}

func readTestCases(infile io.Reader) (result []TestCase, err error) {
	var currCase *TestCase
	var currCall *Call
	lineNo := 0
	scanner := bufio.NewScanner(infile)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens := strings.Fields(line)
		cmd, tokens := tokens[0], tokens[1:]
		if cmd != "test" && currCase == nil {
			return nil, fmt.Errorf("line %d: %s before test", lineNo, cmd)
		}
		if (cmd == "expect" || cmd == "kv") && currCall == nil {
			return nil, fmt.Errorf("line %d: %s before call", lineNo, cmd)
		}
		switch cmd {
		case "test":
			if len(tokens) == 0 {
				return nil, fmt.Errorf("line %d: test needs a name", lineNo)
			}
			result = append(result, NewTestCase(tokens[0]))
			currCase = &result[len(result)-1]
			currCall = nil
		case "code":
			_, err = fillBytes(tokens, &currCase.Code)
		case "entrypoint":
			_, err = fillSliceFromHex(tokens, currCase.Entrypoint[:])
		case "profile":
			if len(tokens) == 0 {
				err = errors.New("profile needs a value")
			} else {
				currCase.Profile = tokens[0]
			}
		case "bypass":
			currCase.Bypass = true
		case "rewrite-error":
			currCase.RewriteError = strings.Join(tokens, " ")
		case "call":
			currCall = &Call{Expect: "success", Values: make(map[[32]byte][32]byte)}
			currCase.Calls = append(currCase.Calls, currCall)
			if tokens, err = fillSliceFromHex(tokens, currCall.Caller[:]); err == nil && len(tokens) > 0 {
				if tokens, err = fillBytes(tokens, &currCall.Input); err == nil && len(tokens) > 0 {
					_, err = fillUInt256(tokens, &currCall.Value)
				}
			}
		case "expect":
			if len(tokens) == 0 {
				err = errors.New("expect needs a status")
				break
			}
			currCall.Expect = tokens[0]
			if len(tokens) > 1 {
				_, err = fillBytes(tokens[1:], &currCall.Output)
				if currCall.Output == nil {
					currCall.Output = []byte{}
				}
			}
		case "kv":
			var k, v [32]byte
			if tokens, err = fillSliceFromHex(tokens, k[:]); err == nil {
				_, err = fillSliceFromHex(tokens, v[:])
			}
			currCall.Values[k] = v
		default:
			err = errors.New("unknown command")
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, cmd, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type RunTestCaseFn func(filename string, theCase *TestCase) error

// RunOneFile runs every case in filename and returns the first failure.
func RunOneFile(filename string, runTestCase RunTestCaseFn) error {
	cases, err := ReadTestCases(filename)
	if err != nil {
		return err
	}
	for i := range cases {
		if err := runTestCase(filename, &cases[i]); err != nil {
			return fmt.Errorf("%s/%s: %w", filename, cases[i].Name, err)
		}
	}
	return nil
}

// RunOneDir runs every .txt case file in dirname.
func RunOneDir(dirname string, runTestCase RunTestCaseFn) error {
	files, err := ioutil.ReadDir(dirname)
	if err != nil {
		return err
	}
	found := false
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".txt") {
			continue
		}
		found = true
		if err := RunOneFile(filepath.Join(dirname, file.Name()), runTestCase); err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("no case files in %s", dirname)
	}
	return nil
}
