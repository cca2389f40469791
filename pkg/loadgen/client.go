// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package loadgen

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"

	"github.com/rapidaai/speechsquad/pkg/commons"
	"github.com/rapidaai/speechsquad/pkg/dataset"
	"github.com/rapidaai/speechsquad/protos"
)

// ClientOptions carries this process's share of the load-generation
// parameters; parallelism has already been divided across processes.
type ClientOptions struct {
	QuestionsJSON       string
	NumParallelRequests int
	NumIterations       int
	LanguageCode        string
	PrintResults        bool
	ChunkDurationMs     int
	OffsetDuration      time.Duration
	TrueConcurrency     bool
	OutputFiles         OutputFilenames
}

// squadChannel tracks active streams per connection for balancing.
type squadChannel struct {
	cc       *grpc.ClientConn
	inflight atomic.Int64
}

// Client drives the paced load: a scheduler goroutine steps every active
// task at its due time while the reaper collects completed tasks and folds
// their measurements into the statistics.
type Client struct {
	opts         ClientOptions
	channels     []*squadChannel
	squadDataset *dataset.SquadEvalDataset
	coordinator  Coordinator
	logger       commons.Logger
	output       *OutputFiles

	sendingComplete atomic.Bool
	reaperWG        sync.WaitGroup

	// Touched only by the reaper until it is joined.
	responseLatencies   []float64
	componentTimings    map[string][]float64
	averageLatency      map[string]float64
	totalAudioProcessed float64
	failedTasksCount    int
}

// NewClient prepares the load generator. When result printing is on, the
// three artifact files are created inside the output root folder up front.
func NewClient(conns []*grpc.ClientConn, opts ClientOptions,
	squadDataset *dataset.SquadEvalDataset, coordinator Coordinator,
	logger commons.Logger) (*Client, error) {

	c := &Client{
		opts:         opts,
		squadDataset: squadDataset,
		coordinator:  coordinator,
		logger:       logger,
	}
	for _, cc := range conns {
		c.channels = append(c.channels, &squadChannel{cc: cc})
	}

	if opts.PrintResults {
		output, err := NewOutputFiles(opts.OutputFiles)
		if err != nil {
			return nil, err
		}
		c.output = output
	}
	return c, nil
}

// Close finishes the result artifacts.
func (c *Client) Close() error {
	if c.output != nil {
		return c.output.Close()
	}
	return nil
}

// Run generates the load and prints the statistics report. The exit code
// follows the load generator contract: 0 on success, 1 on setup failures,
// -1 when the specified load could not be generated.
func (c *Client) Run() int {
	c.sendingComplete.Store(false)
	c.failedTasksCount = 0
	c.responseLatencies = nil
	c.componentTimings = make(map[string][]float64)
	c.averageLatency = make(map[string]float64)
	for _, component := range Components() {
		c.componentTimings[component] = nil
		c.averageLatency[component] = 0
	}
	c.averageLatency[ClientLatencyLabel] = 0

	c.coordinator.Barrier()
	if c.coordinator.Rank() == 0 {
		fmt.Println("Loading eval dataset...")
	}

	allWav, err := dataset.LoadAudioData(c.opts.QuestionsJSON, "id", c.coordinator.Rank(), c.coordinator.Size(), c.logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	procError := 0
	if len(allWav) == 0 {
		if c.coordinator.Size() > 1 {
			procError = 1
		} else {
			fmt.Println("Exiting...")
			return 1
		}
	}
	if c.coordinator.Size() > 1 {
		if c.coordinator.AllReduceSumInt(procError) > 0 {
			fmt.Printf("Provide minimum of %d many questions. Exiting Process %d...\n",
				c.coordinator.Size(), c.coordinator.Rank())
			return 1
		}
	}

	allWavMax := len(allWav) * c.opts.NumIterations
	allWavRepeated := make([]*dataset.AudioData, 0, allWavMax)
	for _, wav := range allWav {
		for iter := 0; iter < c.opts.NumIterations; iter++ {
			allWavRepeated = append(allWavRepeated, wav)
		}
	}

	taskQueue := NewSyncQueue[*Task]()
	c.reaperWG.Add(1)
	go c.reaperFunction(taskQueue)

	c.coordinator.Barrier()
	if c.coordinator.Rank() == 0 {
		fmt.Println("Generating load...")
	}
	c.coordinator.Barrier()

	currTasks := make([]*Task, 0, c.opts.NumParallelRequests)
	nextTasks := make([]*Task, 0, c.opts.NumParallelRequests)

	allWavI := 0
	startTime := time.Now()
	for {
		// The first batch is staggered by this process's rank so that
		// co-operating processes interleave their launches.
		offsetIndex := 0
		if allWavI == 0 {
			offsetIndex = c.coordinator.Rank()
		}
		now := time.Now()
		for len(currTasks) < c.opts.NumParallelRequests && allWavI < allWavMax {
			c.logger.Debugf("adding a new task with id %d", allWavI)
			scheduledTime := now.Add(time.Duration(offsetIndex) * c.opts.OffsetDuration)
			offsetIndex++

			task, err := NewTask(allWavRepeated[allWavI], uint32(allWavI), c.openStream,
				c.opts.LanguageCode, c.opts.ChunkDurationMs, c.opts.PrintResults,
				c.squadDataset, c.output, c.logger, scheduledTime)
			if err != nil {
				c.waitForReaper()
				fmt.Fprintf(os.Stderr, "Failed to generate specified load. Error details: %v\n", err)
				return -1
			}
			currTasks = append(currTasks, task)
			allWavI++
		}

		// If still empty, done
		if len(currTasks) == 0 {
			break
		}

		stepped := false
		for _, task := range currTasks {
			if time.Now().Before(task.NextTimePoint()) {
				nextTasks = append(nextTasks, task)
				continue
			}
			if state := task.State(); state == TaskSending || state == TaskStart {
				stepped = true
				if err := task.Step(); err != nil {
					c.waitForReaper()
					fmt.Fprintf(os.Stderr, "Failed to generate specified load. Error details: %v\n", err)
					return -1
				}
			}

			switch state := task.State(); {
			case state == TaskReceivingComplete:
				// Terminal either way; a stream the server tore down may
				// never pass through SENDING_COMPLETE.
				taskQueue.Put(task)
			case !c.opts.TrueConcurrency && state == TaskSendingComplete:
				taskQueue.Put(task)
			default:
				nextTasks = append(nextTasks, task)
			}
		}

		currTasks, nextTasks = nextTasks, currTasks[:0]
		if !stepped {
			// Nothing was due; yield instead of spinning flat out.
			time.Sleep(100 * time.Microsecond)
		}
	}

	c.coordinator.Barrier()
	if c.coordinator.Rank() == 0 {
		fmt.Println("Waiting for all responses...")
	}
	c.waitForReaper()
	c.coordinator.Barrier()

	currentTime := time.Now()
	if c.coordinator.Rank() == 0 {
		fmt.Println()
		fmt.Println("Done with measurements")
		fmt.Println("Generating Statistics Report...")
	}

	for i := 0; i < c.coordinator.Size(); i++ {
		c.coordinator.Barrier()
		if c.coordinator.Size() > 1 {
			time.Sleep(time.Second)
		}
		if i == c.coordinator.Rank() {
			fmt.Printf("\t\t================ Process %d================\n", c.coordinator.Rank())
			c.printStats()
		}
		c.coordinator.Barrier()
	}

	successProcCount := 0
	if c.coordinator.Size() > 1 {
		c.totalAudioProcessed = c.coordinator.ReduceSumFloat64(c.totalAudioProcessed)
		for name, value := range c.averageLatency {
			c.averageLatency[name] = c.coordinator.ReduceSumFloat64(value)
		}
		c.failedTasksCount = c.coordinator.ReduceSumInt(c.failedTasksCount)

		processSucceeded := 0
		if c.averageLatency[ClientLatencyLabel] != 0 {
			processSucceeded = 1
		}
		successProcCount = c.coordinator.ReduceSumInt(processSucceeded)
	}

	c.coordinator.Barrier()
	if c.coordinator.Rank() == 0 {
		diffMs := float64(currentTime.Sub(startTime).Microseconds()) / 1000.0
		fmt.Println("\t\t================ Final Report ================")
		fmt.Printf("Run time: %g sec.\n", diffMs/1000.0)
		fmt.Printf("Total audio processed: %g sec.\n", c.totalAudioProcessed)
		fmt.Printf("Throughput: %g RTFX\n", c.totalAudioProcessed*1000.0/diffMs)
		fmt.Printf("Number of failed audio clips: %d\n", c.failedTasksCount)
		fmt.Println("Average Latencies ====> ")
		divisor := float64(successProcCount)
		if divisor < 1 {
			divisor = 1
		}
		for _, name := range append(Components(), ClientLatencyLabel) {
			fmt.Printf("\t%s:%g ms\n", name, c.averageLatency[name]/divisor)
		}
	}
	return 0
}

func (c *Client) waitForReaper() {
	c.sendingComplete.Store(true)
	c.reaperWG.Wait()
}

// reaperFunction sequentially awaits completed tasks and folds their
// results into the statistics. Only tasks that actually received audio
// contribute latency samples.
func (c *Client) reaperFunction(taskQueue *SyncQueue[*Task]) {
	defer c.reaperWG.Done()
	for !c.sendingComplete.Load() || !taskQueue.Empty() {
		for !taskQueue.Empty() {
			task := taskQueue.Get()
			failed := false
			if err := task.WaitForCompletion(); err != nil {
				failed = true
				c.failedTasksCount++
			}
			c.totalAudioProcessed += task.AudioProcessed()
			if !failed && task.TaskStatus() != nil {
				failed = true
				c.failedTasksCount++
			}
			c.logger.Debugf("completed task with id %d", task.ID())

			if failed {
				continue
			}
			result := task.Result()
			if result.ReceivedAudio() {
				c.responseLatencies = append(c.responseLatencies, result.ResponseLatency)
				for name, value := range result.ComponentTimings {
					c.componentTimings[name] = append(c.componentTimings[name], value)
				}
			}
		}
		time.Sleep(time.Millisecond)
	}
}

// openStream picks a channel with power-of-two-choices over two distinct
// in-flight stream counters and opens the inference stream on it. The slot
// is released when the task's context ends.
func (c *Client) openStream(ctx context.Context) (protos.SpeechSquadService_SpeechSquadInferClient, error) {
	channel := c.channels[0]
	if len(c.channels) > 1 {
		i := rand.Intn(len(c.channels))
		j := rand.Intn(len(c.channels) - 1)
		if j >= i {
			j++
		}
		channel = c.channels[i]
		if c.channels[j].inflight.Load() < channel.inflight.Load() {
			channel = c.channels[j]
		}
	}
	channel.inflight.Add(1)

	stream, err := protos.NewSpeechSquadServiceClient(channel.cc).SpeechSquadInfer(ctx)
	if err != nil {
		channel.inflight.Add(-1)
		return nil, err
	}
	go func() {
		<-ctx.Done()
		channel.inflight.Add(-1)
	}()
	return stream, nil
}
