package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/pickbot/colornet/internal/export"
	"github.com/pickbot/colornet/internal/label"
	"github.com/pickbot/colornet/internal/ml"
	"github.com/pickbot/colornet/internal/sensor"
	"github.com/pickbot/colornet/internal/train"
)

type Config struct {
	datasetPath  string
	exportPath   string
	epochs       int
	learningRate float64
	batchSize    int
	patience     int
	splitRatio   float64
	splitSeed    int64
	initSeed     int64
}

var config Config

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var defaults = train.DefaultOptions()
	flag.StringVar(&config.datasetPath, "td", "color_data.txt", "Path to sensor log")
	flag.StringVar(&config.exportPath, "out", "", "Path to write exported weights (default stdout)")
	flag.IntVar(&config.epochs, "epochs", defaults.Epochs, "Epoch budget")
	flag.Float64Var(&config.learningRate, "lr", 0.001, "Learning rate")
	flag.IntVar(&config.batchSize, "bs", defaults.BatchSize, "Mini-batch size")
	flag.IntVar(&config.patience, "patience", defaults.Patience, "Early-stopping patience in epochs")
	flag.Float64Var(&config.splitRatio, "split", 0.8, "Training share of the dataset")
	flag.Int64Var(&config.splitSeed, "splitseed", 42, "Seed of the train/validation split")
	flag.Int64Var(&config.initSeed, "seed", 1, "Seed of the weight initialization")
	flag.Parse()

	log.Printf("%+v", config)

	var err = run()
	if err != nil {
		log.Fatal(err)
	}
}

func run() error {
	samples, err := sensor.Load(context.Background(), config.datasetPath)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples found in %v", config.datasetPath)
	}
	log.Println("Loaded samples", len(samples))

	var features = sensor.Normalize(samples)
	targets, err := label.OneHot(sensor.Labels(samples))
	if err != nil {
		return err
	}
	dataset, err := train.NewDataset(features, targets)
	if err != nil {
		return err
	}

	var splitRnd = rand.New(rand.NewSource(config.splitSeed))
	training, validation := dataset.Split(splitRnd, config.splitRatio)
	log.Println("Training samples", training.Len(), "validation samples", validation.Len())

	var net = train.NewNetwork(rand.New(rand.NewSource(config.initSeed)))
	var trainer = train.NewTrainer(net, training, validation, train.Options{
		Epochs:       config.epochs,
		LearningRate: float32(config.learningRate),
		BatchSize:    config.batchSize,
		Patience:     config.patience,
	})
	var summary = trainer.Train()
	log.Printf("Finished after %v epochs, best validation loss %v, early stop %v",
		summary.Epochs, summary.BestValidationLoss, summary.StoppedEarly)
	log.Printf("Training accuracy %.4f", train.Accuracy(net, training))

	reportPredictions(net, dataset, samples)

	return writeWeights(net)
}

// reportPredictions logs the network's verdict on a handful of samples, a
// quick sanity check before the weights go into firmware.
func reportPredictions(net *train.Network, dataset train.Dataset, samples []sensor.Sample) {
	var count = min(5, len(samples))
	for i := 0; i < count; i++ {
		var predicted = train.Predict(net, rowCopy(dataset.Features, i))
		log.Printf("Sample %v: input [%v %v %v %v], true %v, predicted %v",
			i, samples[i].Red, samples[i].Green, samples[i].Blue, samples[i].Clear,
			samples[i].Color, label.Name(predicted))
	}
}

func rowCopy(m ml.Matrix, row int) []float32 {
	var result = make([]float32, m.Cols)
	copy(result, m.Row(row))
	return result
}

func writeWeights(net *train.Network) error {
	var out io.Writer = os.Stdout
	if config.exportPath != "" {
		file, err := os.Create(config.exportPath)
		if err != nil {
			return errors.Wrap(err, "create export file")
		}
		defer file.Close()
		out = file
	}
	return export.WriteNetwork(out, net)
}
