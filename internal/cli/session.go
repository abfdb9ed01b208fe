package cli

import (
	"fmt"

	"rollcall/internal/common"
	"rollcall/internal/session"
	"rollcall/pkg/tracker"
)

// OpenSessionStore opens the session database at `sessionPath` and
// restores any session it holds. The returned closer releases the
// database and should be registered as a shutdown process
func OpenSessionStore(sessionPath string, serviceLogs chan<- common.ServiceLog) (*session.Store, func() error, error) {
	absolutePath, err := common.ToAbsolutePath(sessionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve session path[%s]: %w", sessionPath, err)
	}
	slots, err := session.OpenBoltSlots(absolutePath)
	if err != nil {
		return nil, nil, err
	}
	store, err := session.NewStore(session.StoreOpts{
		Slots:       slots,
		ServiceLogs: serviceLogs,
	})
	if err != nil {
		slots.Close()
		return nil, nil, fmt.Errorf("failed to create session store: %w", err)
	}
	if _, err := store.Restore(); err != nil {
		slots.Close()
		return nil, nil, err
	}
	return store, slots.Close, nil
}

// RequireSession returns the restored session, asking the user to log
// in when there is none
func RequireSession(store *session.Store) (*session.Session, error) {
	current := store.Current()
	if current == nil {
		fmt.Printf("⚠️  You must be logged in to run this command, use `%s login`\n", common.AppName)
		return nil, ErrorNotAuthenticated
	}
	return current, nil
}

// RequireRole is RequireSession for commands that only make sense for
// one role
func RequireRole(store *session.Store, isAllowed func(session.Roles) bool, roleName string) (*session.Session, error) {
	current, err := RequireSession(store)
	if err != nil {
		return nil, err
	}
	if !isAllowed(current.Roles()) {
		fmt.Printf("⚠️  This command is for %ss, you are logged in as %s\n", roleName, current.Roles())
		return nil, ErrorWrongRole
	}
	return current, nil
}

func NewTrackerClient(trackerUrl, id string) (*tracker.Client, error) {
	client, err := tracker.NewClient(tracker.NewClientOpts{
		TrackerUrl: trackerUrl,
		Id:         id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}
	return client, nil
}
