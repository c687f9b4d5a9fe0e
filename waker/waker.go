// Package waker starts the backend server's EC2 instance when players show
// up in limbo, so a proxy can move them on once it is running.
package waker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
)

var ErrInstanceNotFound = errors.New("instance not found")

// EC2API is the part of the EC2 client the waker uses.
type EC2API interface {
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, in *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
}

type Result int

const (
	// Skipped means an attempt was made within the cooldown.
	Skipped Result = iota
	AlreadyRunning
	Started
	// Unavailable means the instance is stopping or gone and cannot be
	// started now.
	Unavailable
)

func (r Result) String() string {
	switch r {
	case Skipped:
		return "skipped"
	case AlreadyRunning:
		return "already running"
	case Started:
		return "started"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

type Waker struct {
	client     EC2API
	instanceID string
	cooldown   time.Duration
	log        zerolog.Logger

	mu       sync.Mutex
	last     time.Time
	inflight bool
	now      func() time.Time
}

// New builds a waker using the default AWS credential chain.
func New(ctx context.Context, region, instanceID string, cooldown time.Duration, log zerolog.Logger) (*Waker, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(ec2.NewFromConfig(cfg), instanceID, cooldown, log), nil
}

func NewWithClient(client EC2API, instanceID string, cooldown time.Duration, log zerolog.Logger) *Waker {
	return &Waker{
		client:     client,
		instanceID: instanceID,
		cooldown:   cooldown,
		log:        log.With().Str("instance", instanceID).Logger(),
		now:        time.Now,
	}
}

// Wake starts the instance if it is stopped. The cooldown begins once EC2
// confirms the instance is running or starting; failed attempts leave it
// unset so the next player retries. Calls within the cooldown, or while
// another call is in flight, return Skipped without contacting EC2. Wake is
// safe for concurrent use.
func (w *Waker) Wake(ctx context.Context) (Result, error) {
	w.mu.Lock()
	if w.inflight || (!w.last.IsZero() && w.now().Sub(w.last) < w.cooldown) {
		w.mu.Unlock()
		return Skipped, nil
	}
	w.inflight = true
	w.mu.Unlock()

	res, err := w.wake(ctx)

	w.mu.Lock()
	w.inflight = false
	if err == nil && (res == Started || res == AlreadyRunning) {
		w.last = w.now()
	}
	w.mu.Unlock()
	return res, err
}

func (w *Waker) wake(ctx context.Context) (Result, error) {
	state, err := w.state(ctx)
	if err != nil {
		return Unavailable, err
	}

	switch state {
	case types.InstanceStateNameRunning, types.InstanceStateNamePending:
		w.log.Debug().Str("state", string(state)).Msg("backend already up")
		return AlreadyRunning, nil
	case types.InstanceStateNameStopped:
	default:
		w.log.Info().Str("state", string(state)).Msg("backend cannot be started now")
		return Unavailable, nil
	}

	out, err := w.client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{w.instanceID},
	})
	if err != nil {
		return Unavailable, fmt.Errorf("start %s: %w", w.instanceID, err)
	}
	for _, c := range out.StartingInstances {
		if c.CurrentState != nil {
			w.log.Info().Str("state", string(c.CurrentState.Name)).Msg("starting backend")
		}
	}
	return Started, nil
}

func (w *Waker) state(ctx context.Context) (types.InstanceStateName, error) {
	out, err := w.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{w.instanceID},
	})
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", w.instanceID, err)
	}
	for _, r := range out.Reservations {
		for _, inst := range r.Instances {
			if aws.ToString(inst.InstanceId) == w.instanceID && inst.State != nil {
				return inst.State.Name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInstanceNotFound, w.instanceID)
}
