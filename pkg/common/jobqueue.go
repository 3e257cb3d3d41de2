package common

import "sync"

type Job func() error

// JobQueue runs jobs one after another on a single background goroutine, in the order they were enqueued.
type JobQueue struct {
	jobsChannel chan Job
	stopChannel chan struct{}
	stopOnce    sync.Once
	waitGroup   sync.WaitGroup
	logger      Logger
}

func NewJobQueue(logger Logger) *JobQueue {
	worker := &JobQueue{
		jobsChannel: make(chan Job, 128),
		stopChannel: make(chan struct{}),
		logger:      logger,
	}
	worker.waitGroup.Add(1)
	go worker.run()
	return worker
}

// Enqueue returns false if the queue is stopped; the job is not run then. It never blocks after Stop, even if the
// queue is full.
func (j *JobQueue) Enqueue(job Job) bool {
	select {
	case <-j.stopChannel:
		return false
	default:
	}
	select {
	case j.jobsChannel <- job:
		return true
	case <-j.stopChannel:
		return false
	}
}

// Stop waits for the job currently running (if any) and stops the worker. Jobs still in the queue are dropped.
func (j *JobQueue) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChannel)
	})
	j.waitGroup.Wait()
}

func (j *JobQueue) run() {
	defer j.waitGroup.Done()
	for {
		select {
		case <-j.stopChannel:
			return
		case job := <-j.jobsChannel:
			err := job()
			if err != nil {
				j.logger.Log("failed to process a job: " + err.Error())
			}
		}
	}
}
