package cli

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"rollcall/internal/common"

	"github.com/spf13/cobra"
)

var commandProcessWaiter sync.WaitGroup

type CommandOpts struct {
	Name  string
	Flags Flags

	Use     string
	Aliases []string
	Short   string
	Long    string
	Example string
	Args    cobra.PositionalArgs

	Run func(cmd *cobra.Command, opts *Command, args []string) error
}

// NewCommand initialises and returns a data structure that contains
// a set of common constructs and information for all commands to use
func NewCommand(opts CommandOpts) *Command {
	output := &Command{
		name:              opts.Name,
		shutdownProcesses: map[string]func() error{},
	}
	serviceLogs := make(chan common.ServiceLog, 64)
	common.StartServiceLogLoop(serviceLogs)
	output.serviceLogs = serviceLogs

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown_hostname"
	}
	output.hostname = hostname

	output.Command = &cobra.Command{
		Use:     opts.Use,
		Aliases: opts.Aliases,
		Short:   opts.Short,
		Long:    opts.Long,
		Example: opts.Example,
		Args:    opts.Args,
		PreRun: func(cmd *cobra.Command, args []string) {
			opts.Flags.BindViper(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.Run(cmd, output, args)
			output.mutex.Lock()
			isShutdownFromSignal := output.isShutdownFromSignal
			isReady := output.isReady
			output.mutex.Unlock()
			if !isShutdownFromSignal {
				output.Shutdown()
				if isReady {
					signal.Stop(output.signals)
					commandProcessWaiter.Done()
				}
			}
			commandProcessWaiter.Wait()
			return err
		},
	}
	opts.Flags.AddToCommand(output.Command)

	return output
}

// Command is an abstraction for all of rollcall's cli commands
type Command struct {
	name              string
	hostname          string
	serviceLogs       chan common.ServiceLog
	shutdownProcesses map[string]func() error

	mutex                sync.Mutex
	isReady              bool
	isShutdownFromSignal bool
	signals              chan os.Signal

	*cobra.Command
}

// AddShutdownProcess adds a `process` named `id` for use when the
// Shutdown() method is called
func (cd *Command) AddShutdownProcess(id string, process func() error) {
	cd.mutex.Lock()
	defer cd.mutex.Unlock()
	if _, ok := cd.shutdownProcesses[id]; ok {
		cd.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "process[%s] was overwritten", id)
	}
	cd.shutdownProcesses[id] = process
}

// Get returns the underlying cobra.Command
func (cd *Command) Get() *cobra.Command {
	return cd.Command
}

// GetFullname returns the full namespaced ID of the current command,
// it is sent to the tracker as part of the user agent
func (cd *Command) GetFullname() string {
	return strings.ToLower(common.AppName + "." + cd.name)
}

// GetHostname returns the current hostname of the machine
func (cd *Command) GetHostname() string {
	return cd.hostname
}

// GetServiceLogs returns an instance of the service logs channel
// that other components can use for logging to a central logging
// system
func (cd *Command) GetServiceLogs() chan common.ServiceLog {
	return cd.serviceLogs
}

// IsReady tells the command to begin listening for system lifecycle
// events. It returns a channel that is closed once a signal has
// triggered the shutdown, long-running commands select on it to stop
func (cd *Command) IsReady() <-chan struct{} {
	stopped := make(chan struct{})
	cd.mutex.Lock()
	if cd.isReady {
		cd.mutex.Unlock()
		return stopped
	}
	cd.isReady = true
	cd.signals = make(chan os.Signal, 1)
	cd.mutex.Unlock()
	signal.Notify(cd.signals, syscall.SIGINT, syscall.SIGTERM)

	commandProcessWaiter.Add(1)
	go func() {
		<-cd.signals
		cd.mutex.Lock()
		cd.isShutdownFromSignal = true
		cd.mutex.Unlock()
		close(stopped)
		cd.Shutdown()
		commandProcessWaiter.Done()
	}()
	return stopped
}

// Shutdown gracefully terminates any processes in the command, for this
// to be effective, use the AddShutdownProcess method to add functions
// that close things like database connections
func (cd *Command) Shutdown() {
	cd.mutex.Lock()
	processes := make(map[string]func() error, len(cd.shutdownProcesses))
	for id, process := range cd.shutdownProcesses {
		processes[id] = process
	}
	cd.shutdownProcesses = map[string]func() error{}
	cd.mutex.Unlock()
	if len(processes) == 0 {
		return
	}

	var waiter sync.WaitGroup
	cd.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "triggering shutdownProcesses (%v registered)", len(processes))
	var errs []error
	var errsMutex sync.Mutex
	for id, shutdownProcess := range processes {
		waiter.Add(1)
		go func(processId string, process func() error) {
			defer waiter.Done()
			if err := process(); err != nil {
				cd.serviceLogs <- common.ServiceLogf(common.LogLevelError, "shutdownProcess[%s] failed: %s", processId, err)
				errsMutex.Lock()
				errs = append(errs, err)
				errsMutex.Unlock()
				return
			}
			cd.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "shutdownProcess[%s] succeeded", processId)
		}(id, shutdownProcess)
	}
	waiter.Wait()
	cd.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "completed shutdownProcesses (%v errored out)", len(errs))
}
