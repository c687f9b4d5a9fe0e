package waker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
)

const testInstance = "i-0123456789abcdef0"

type fakeEC2 struct {
	state       types.InstanceStateName
	describeErr error
	startErr    error
	describes   int
	starts      int
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describes++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if f.state == "" {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{
			Instances: []types.Instance{{
				InstanceId: aws.String(in.InstanceIds[0]),
				State:      &types.InstanceState{Name: f.state},
			}},
		}},
	}, nil
}

func (f *fakeEC2) StartInstances(ctx context.Context, in *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	f.starts++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &ec2.StartInstancesOutput{
		StartingInstances: []types.InstanceStateChange{{
			InstanceId:   aws.String(in.InstanceIds[0]),
			CurrentState: &types.InstanceState{Name: types.InstanceStateNamePending},
		}},
	}, nil
}

func TestWake(t *testing.T) {
	tests := []struct {
		desc   string
		state  types.InstanceStateName
		result Result
		starts int
	}{
		{"Stopped", types.InstanceStateNameStopped, Started, 1},
		{"Running", types.InstanceStateNameRunning, AlreadyRunning, 0},
		{"Pending", types.InstanceStateNamePending, AlreadyRunning, 0},
		{"Stopping", types.InstanceStateNameStopping, Unavailable, 0},
		{"Terminated", types.InstanceStateNameTerminated, Unavailable, 0},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			fake := &fakeEC2{state: tc.state}
			w := NewWithClient(fake, testInstance, time.Minute, zerolog.Nop())

			got, err := w.Wake(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.result {
				t.Errorf("got %s, want %s", got, tc.result)
			}
			if fake.starts != tc.starts {
				t.Errorf("got %d start calls, want %d", fake.starts, tc.starts)
			}
		})
	}
}

func TestWake_Cooldown(t *testing.T) {
	fake := &fakeEC2{state: types.InstanceStateNameStopped}
	w := NewWithClient(fake, testInstance, time.Minute, zerolog.Nop())
	now := time.Unix(1_700_000_000, 0)
	w.now = func() time.Time { return now }

	if got, _ := w.Wake(context.Background()); got != Started {
		t.Fatalf("first call: got %s", got)
	}

	now = now.Add(30 * time.Second)
	if got, _ := w.Wake(context.Background()); got != Skipped {
		t.Errorf("within cooldown: got %s", got)
	}
	if fake.describes != 1 {
		t.Errorf("cooldown call reached EC2: %d describes", fake.describes)
	}

	now = now.Add(time.Minute)
	if got, _ := w.Wake(context.Background()); got != Started {
		t.Errorf("after cooldown: got %s", got)
	}
}

func TestWake_Errors(t *testing.T) {
	boom := errors.New("boom")
	w := NewWithClient(&fakeEC2{describeErr: boom}, testInstance, 0, zerolog.Nop())
	if _, err := w.Wake(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected describe error, got %v", err)
	}

	w = NewWithClient(&fakeEC2{}, testInstance, 0, zerolog.Nop())
	if _, err := w.Wake(context.Background()); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("expected ErrInstanceNotFound, got %v", err)
	}
}

func TestWake_FailureKeepsCooldownOpen(t *testing.T) {
	tests := []struct {
		desc  string
		fake  *fakeEC2
		first func() context.Context
	}{
		{"Cancelled context", &fakeEC2{state: types.InstanceStateNameStopped}, func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}},
		{"Describe error", &fakeEC2{state: types.InstanceStateNameStopped, describeErr: errors.New("throttled")}, context.Background},
		{"Start error", &fakeEC2{state: types.InstanceStateNameStopped, startErr: errors.New("insufficient capacity")}, context.Background},
		{"Stopping", &fakeEC2{state: types.InstanceStateNameStopping}, context.Background},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			w := NewWithClient(tc.fake, testInstance, time.Minute, zerolog.Nop())
			now := time.Unix(1_700_000_000, 0)
			w.now = func() time.Time { return now }

			if got, _ := w.Wake(tc.first()); got != Unavailable {
				t.Fatalf("first call: got %s, want %s", got, Unavailable)
			}

			tc.fake.describeErr, tc.fake.startErr = nil, nil
			tc.fake.state = types.InstanceStateNameStopped
			now = now.Add(time.Second)

			got, err := w.Wake(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got != Started {
				t.Errorf("retry: got %s, want %s", got, Started)
			}
			if tc.fake.starts == 0 {
				t.Error("StartInstances never called")
			}
		})
	}
}
