package train

import (
	"log"
	"math"

	"github.com/pickbot/colornet/internal/ml"
)

// Options are the training knobs. The defaults reproduce the reference
// training run used to generate the embedded weights.
type Options struct {
	Epochs       int
	LearningRate float32
	BatchSize    int
	Patience     int
}

func DefaultOptions() Options {
	return Options{
		Epochs:       10000,
		LearningRate: 0.001,
		BatchSize:    32,
		Patience:     50,
	}
}

// Summary describes how a training run ended.
type Summary struct {
	Epochs             int
	BestValidationLoss float32
	StoppedEarly       bool
}

// Trainer drives the epoch loop over one network. Training is synchronous
// and single-threaded: batches update the parameters strictly in sequence.
type Trainer struct {
	net        *Network
	training   Dataset
	validation Dataset
	opts       Options
}

func NewTrainer(net *Network, training, validation Dataset, opts Options) *Trainer {
	return &Trainer{
		net:        net,
		training:   training,
		validation: validation,
		opts:       opts,
	}
}

// Train runs until the validation loss stops improving for Patience epochs or
// the epoch budget runs out. The network keeps its latest parameters either
// way; there is no rollback to the best validation epoch.
func (t *Trainer) Train() Summary {
	var stopper = newEarlyStopper(t.opts.Patience)
	var n = t.training.Len()
	var epochs int
	var stoppedEarly bool

	for epoch := 0; epoch < t.opts.Epochs; epoch++ {
		epochs = epoch + 1

		var epochLoss float32
		for i := 0; i < n; i += t.opts.BatchSize {
			var end = min(i+t.opts.BatchSize, n)
			var batch = t.training.Slice(i, end)
			var predicted = t.net.Forward(batch.Features)
			t.net.Backward(batch.Features, batch.Targets, predicted, t.opts.LearningRate)
			epochLoss += ml.MSE(&batch.Targets, &predicted)
		}

		var validationOut = t.net.Forward(t.validation.Features)
		var validationLoss = ml.MSE(&t.validation.Targets, &validationOut)

		if epoch%100 == 0 {
			log.Printf("Epoch %v, Loss: %v, Val Loss: %v",
				epoch, epochLoss/float32(n), validationLoss)
		}

		if stopper.observe(validationLoss) {
			log.Printf("Early stopping at epoch %v", epoch)
			stoppedEarly = true
			break
		}
	}

	return Summary{
		Epochs:             epochs,
		BestValidationLoss: stopper.best,
		StoppedEarly:       stoppedEarly,
	}
}

// earlyStopper tracks the best validation loss seen and the number of epochs
// since it last improved.
type earlyStopper struct {
	best      float32
	noImprove int
	patience  int
}

func newEarlyStopper(patience int) *earlyStopper {
	return &earlyStopper{
		best:     float32(math.Inf(1)),
		patience: patience,
	}
}

// observe records one validation loss and reports whether training should
// stop. Only a strict decrease counts as improvement.
func (s *earlyStopper) observe(validationLoss float32) bool {
	if validationLoss < s.best {
		s.best = validationLoss
		s.noImprove = 0
		return false
	}
	s.noImprove++
	return s.noImprove >= s.patience
}
