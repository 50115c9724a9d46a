package readout

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// ParseReadout parses one trace line: "raw_cost raw_timestep s0 s1 ... s(n-1)".
//
// Each field is a 32-bit word in base 10 or 0x-prefixed hex; unsigned hex words such as 0xFFFFFF00 are accepted.
// A line that is blank or a '#' comment returns ok == false.
// A sentinel line (raw_cost of 0) may omit the remaining fields.
func ParseReadout(line string) (msg goqubo.Readout, ok bool, err error) {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return msg, false, nil
	}

	words := make([]int32, len(fields))
	for i, field := range fields {
		words[i], err = parseWord(field)
		if err != nil {
			return msg, false, errors.Wrapf(goqubo.ErrBadReadout, "field %d: %v", i+1, err)
		}
	}

	msg.RawCost = words[0]
	if len(words) < 2 {
		if msg.RawCost != 0 {
			return msg, false, errors.Wrap(goqubo.ErrBadReadout, "missing raw timestep")
		}
		return msg, true, nil
	}
	msg.RawTimestep = words[1]
	msg.RawSolution = words[2:]
	return msg, true, nil
}

func parseWord(field string) (int32, error) {
	v, err := strconv.ParseInt(field, 0, 64)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, errors.Errorf("%q exceeds 32 bits", field)
	}
	return int32(uint32(v)), nil
}

// FormatReadout renders msg as a trace line that ParseReadout reads back.
func FormatReadout(msg goqubo.Readout) string {
	b := strings.Builder{}
	b.WriteString(strconv.FormatInt(int64(msg.RawCost), 10))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(int64(msg.RawTimestep), 10))
	for _, word := range msg.RawSolution {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(int64(word), 10))
	}
	return b.String()
}

// ReadTrace streams the messages of a readout trace.
//
// Both channels are closed when r is exhausted.  A read error or malformed line is sent on the error
// channel and ends the stream.
func ReadTrace(r io.Reader) (<-chan goqubo.Readout, <-chan error) {
	out := make(chan goqubo.Readout, 8)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(out)

		scanner := bufio.NewScanner(r)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			msg, ok, err := ParseReadout(scanner.Text())
			if err != nil {
				klog.Warningf("readout trace line %d: %v", lineNum, err)
				errs <- errors.Wrapf(err, "line %d", lineNum)
				return
			}
			if ok {
				out <- msg
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- errors.Wrap(err, "reading readout trace")
		}
	}()

	return out, errs
}
