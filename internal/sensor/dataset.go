package sensor

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/pickbot/colornet/internal/ml"
)

// SensorRange is the full-scale reading of one color channel. Normalization
// divides by it without clipping, so readings above it map above 1.0.
const SensorRange = 2048

// Sample is one line of the sensor log: four raw channel readings and the
// color label recorded for them.
type Sample struct {
	Red   int
	Green int
	Blue  int
	Clear int
	Color string
}

var lineRegexp = regexp.MustCompile(`Red: (\d+), Green: (\d+), Blue: (\d+), Clear: (\d+), Color: (\w+)`)

// ParseLine extracts a sample from one log line. Lines that do not match the
// log format report ok=false; the log is noisy and such lines are skipped.
func ParseLine(line string) (Sample, bool) {
	var m = lineRegexp.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, false
	}
	var channels [4]int
	for i := range channels {
		var v, err = strconv.Atoi(m[1+i])
		if err != nil {
			return Sample{}, false
		}
		channels[i] = v
	}
	return Sample{
		Red:   channels[0],
		Green: channels[1],
		Blue:  channels[2],
		Clear: channels[3],
		Color: m[5],
	}, true
}

// Load reads every matching line of the sensor log at path.
func Load(ctx context.Context, path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sensor log")
	}
	defer file.Close()

	g, ctx := errgroup.WithContext(ctx)
	var samples = make(chan Sample, 128)

	g.Go(func() error {
		defer close(samples)
		var scanner = bufio.NewScanner(file)
		for scanner.Scan() {
			var sample, ok = ParseLine(scanner.Text())
			if !ok {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case samples <- sample:
			}
		}
		return errors.Wrap(scanner.Err(), "scan sensor log")
	})

	var result []Sample
	g.Go(func() error {
		for sample := range samples {
			result = append(result, sample)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Normalize scales the raw channel readings into one feature row per sample.
func Normalize(samples []Sample) ml.Matrix {
	var features = ml.NewMatrix(len(samples), 4)
	for i, sample := range samples {
		var row = features.Row(i)
		row[0] = float32(sample.Red) / SensorRange
		row[1] = float32(sample.Green) / SensorRange
		row[2] = float32(sample.Blue) / SensorRange
		row[3] = float32(sample.Clear) / SensorRange
	}
	return features
}

// Labels collects the label column of the samples.
func Labels(samples []Sample) []string {
	var result = make([]string, len(samples))
	for i := range samples {
		result[i] = samples[i].Color
	}
	return result
}
