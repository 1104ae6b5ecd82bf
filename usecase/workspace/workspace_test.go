package workspace

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devharbor/devharbor/adapters/store/inmem"
	"github.com/devharbor/devharbor/domain/model"
)

// fakeEngine is an in-memory engine port with scriptable failures.
type fakeEngine struct {
	mu         sync.Mutex
	containers map[string]*fakeContainer
	createErr  map[string]error // keyed by container name
	startErr   map[string]error
	startErrFn func(ref string) error
	stopErr    map[string]error
	removeErr  map[string]error
	execErr    error
	execOut    string
	execCalls  [][]string
	removed    []string
}

type fakeContainer struct {
	spec    *model.ContainerSpec
	running bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		containers: map[string]*fakeContainer{},
		createErr:  map[string]error{},
		startErr:   map[string]error{},
		stopErr:    map[string]error{},
		removeErr:  map[string]error{},
	}
}

func (f *fakeEngine) CreateContainer(_ context.Context, spec *model.ContainerSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[spec.Name]; err != nil {
		return "", err
	}
	f.containers[spec.Name] = &fakeContainer{spec: spec}
	return spec.Name, nil
}

func (f *fakeEngine) StartContainer(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.startErr[ref]; err != nil {
		return err
	}
	if f.startErrFn != nil {
		if err := f.startErrFn(ref); err != nil {
			return err
		}
	}
	c, ok := f.containers[ref]
	if !ok {
		return model.ErrContainerNotFound
	}
	c.running = true
	return nil
}

func (f *fakeEngine) StopContainer(_ context.Context, ref string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.stopErr[ref]; err != nil {
		return err
	}
	c, ok := f.containers[ref]
	if !ok {
		return model.ErrContainerNotFound
	}
	c.running = false
	return nil
}

func (f *fakeEngine) RemoveContainer(_ context.Context, ref string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, ref)
	if err := f.removeErr[ref]; err != nil {
		return err
	}
	if _, ok := f.containers[ref]; !ok {
		return model.ErrContainerNotFound
	}
	delete(f.containers, ref)
	return nil
}

func (f *fakeEngine) InspectContainer(_ context.Context, ref string) (*model.ContainerState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[ref]
	if !ok {
		return nil, model.ErrContainerNotFound
	}
	status := "exited"
	if c.running {
		status = "running"
	}
	return &model.ContainerState{Ref: ref, Running: c.running, Status: status}, nil
}

func (f *fakeEngine) Exec(_ context.Context, ref string, cmd []string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execCalls = append(f.execCalls, cmd)
	if f.execErr != nil {
		return nil, f.execErr
	}
	payload := f.execOut
	b := make([]byte, 8, 8+len(payload))
	b[0] = 1
	binary.BigEndian.PutUint32(b[4:8], uint32(len(payload)))
	return io.NopCloser(bytes.NewReader(append(b, payload...))), nil
}

func (f *fakeEngine) container(name string) *fakeContainer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containers[name]
}

var _ model.EnginePort = (*fakeEngine)(nil)

func newTestUseCase(engine *fakeEngine) (*UseCase, *inmem.Store) {
	store := inmem.NewStore()
	repos := &Repos{Workspace: store.WorkspaceRepo, Environment: store.EnvironmentRepo}
	settings := &Settings{
		BaseDomain:   "dev.example.com",
		AgentImage:   "devharbor/agent:latest",
		EditorImage:  "devharbor/editor:latest",
		AgentPort:    3284,
		EditorPort:   8080,
		StopGrace:    5 * time.Second,
		ReadyTimeout: 2 * time.Second,
		ExecTimeout:  time.Second,
	}
	return New(repos, engine, settings), store
}

func seedEnvironment(t *testing.T, store *inmem.Store, owner, name string, vars map[string]string) *model.Environment {
	t.Helper()
	e := &model.Environment{OwnerID: owner, Name: name, Variables: vars, CreatedAt: time.Now().UTC()}
	if err := store.EnvironmentRepo.Create(context.Background(), e); err != nil {
		t.Fatalf("seed environment: %v", err)
	}
	return e
}

func createWorkspace(t *testing.T, uc *UseCase, in *CreateInput) *model.Workspace {
	t.Helper()
	out, err := uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	return out.Workspace
}

func TestCreateProvisionsContainerPair(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	e1 := seedEnvironment(t, store, "u-1", "base", map[string]string{"X": "1", "Y": "9"})
	e2 := seedEnvironment(t, store, "u-1", "override", map[string]string{"X": "2"})

	out, err := uc.Create(ctx, &CreateInput{
		OwnerID:        "u-1",
		Name:           "demo",
		RepoURL:        "https://example.com/repo.git",
		RepoBranch:     "main",
		EnvironmentIDs: []string{e1.ID, e2.ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ws := out.Workspace
	if ws.Status != model.WorkspaceStatusRunning {
		t.Fatalf("status = %s, want running", ws.Status)
	}

	agent := engine.container("harbor-agent-" + ws.ID)
	editor := engine.container("harbor-editor-" + ws.ID)
	if agent == nil || editor == nil {
		t.Fatalf("container pair not created")
	}
	if !agent.running || !editor.running {
		t.Fatalf("container pair not running")
	}

	// Later environment wins on key collision.
	if agent.spec.Env["X"] != "2" || agent.spec.Env["Y"] != "9" {
		t.Fatalf("merged env = %v", agent.spec.Env)
	}
	if agent.spec.Env["HARBOR_REPO_URL"] != "https://example.com/repo.git" {
		t.Fatalf("repo url not injected: %v", agent.spec.Env)
	}

	// Routing labels for proxy discovery.
	wantHost := "Host(`agent-" + ws.ID + ".dev.example.com`)"
	if agent.spec.Labels["traefik.http.routers.harbor-agent-"+ws.ID+".rule"] != wantHost {
		t.Fatalf("agent routing label missing: %v", agent.spec.Labels)
	}
	if editor.spec.Labels["traefik.http.services.harbor-editor-"+ws.ID+".loadbalancer.server.port"] != "8080" {
		t.Fatalf("editor port label missing: %v", editor.spec.Labels)
	}

	// Persisted record agrees.
	got, err := store.WorkspaceRepo.Get(ctx, ws.ID)
	if err != nil || got.Status != model.WorkspaceStatusRunning {
		t.Fatalf("persisted status = %v, %v", got, err)
	}
	ids, _ := store.WorkspaceRepo.LinkedEnvironmentIDs(ctx, ws.ID)
	if len(ids) != 2 || ids[0] != e1.ID || ids[1] != e2.ID {
		t.Fatalf("linked ids = %v", ids)
	}
}

func TestCreateRejectsForeignEnvironment(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)

	mine := seedEnvironment(t, store, "u-1", "mine", nil)
	theirs := seedEnvironment(t, store, "u-2", "theirs", nil)

	_, err := uc.Create(context.Background(), &CreateInput{
		OwnerID:        "u-1",
		Name:           "demo",
		EnvironmentIDs: []string{mine.ID, theirs.ID},
	})
	if !errors.Is(err, model.ErrOwnerMismatch) {
		t.Fatalf("expected ErrOwnerMismatch, got %v", err)
	}
	if len(engine.containers) != 0 {
		t.Fatalf("no containers should exist after rejected create")
	}
}

func TestCreateFailureCleansUpAndPersistsError(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	// Both containers are created, the agent starts, the editor start
	// fails: this is the partial-failure shape create must recover from.
	engine.startErrFn = func(ref string) error {
		if strings.HasPrefix(ref, "harbor-editor-") {
			return errors.New("editor image pull failed")
		}
		return nil
	}

	_, err := uc.Create(ctx, &CreateInput{OwnerID: "u-1", Name: "broken"})
	if err == nil {
		t.Fatalf("expected create failure")
	}

	workspaces, _ := store.WorkspaceRepo.List(ctx)
	if len(workspaces) != 1 {
		t.Fatalf("workspace count = %d", len(workspaces))
	}
	ws := workspaces[0]
	if ws.Status != model.WorkspaceStatusError {
		t.Fatalf("status = %s, want error", ws.Status)
	}
	if ws.StatusDetail == "" {
		t.Fatalf("status detail not retained")
	}
	// Cleanup removed whatever was created.
	if len(engine.containers) != 0 {
		t.Fatalf("leftover containers after failed create: %v", engine.containers)
	}

	// A subsequent delete succeeds even though both containers are gone.
	if _, err := uc.Delete(ctx, &DeleteInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("delete after failed create: %v", err)
	}
	if _, err := store.WorkspaceRepo.Get(ctx, ws.ID); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Fatalf("record should be gone, got %v", err)
	}
}

// failingLinkRepo fails link replacement while delegating everything else.
type failingLinkRepo struct {
	*inmem.WorkspaceRepository
	linkErr error
}

func (r *failingLinkRepo) ReplaceEnvironmentLinks(ctx context.Context, workspaceID string, environmentIDs []string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	return r.WorkspaceRepository.ReplaceEnvironmentLinks(ctx, workspaceID, environmentIDs)
}

func TestCreateLinkFailurePersistsErrorStatus(t *testing.T) {
	engine := newFakeEngine()
	store := inmem.NewStore()
	wsRepo := &failingLinkRepo{
		WorkspaceRepository: store.WorkspaceRepo,
		linkErr:             errors.New("link table unavailable"),
	}
	uc := New(
		&Repos{Workspace: wsRepo, Environment: store.EnvironmentRepo},
		engine,
		&Settings{BaseDomain: "dev.example.com", AgentImage: "a", EditorImage: "e", AgentPort: 3284, EditorPort: 8080, ReadyTimeout: time.Second, ExecTimeout: time.Second},
	)
	ctx := context.Background()

	_, err := uc.Create(ctx, &CreateInput{OwnerID: "u-1", Name: "demo"})
	if err == nil {
		t.Fatalf("expected create failure")
	}

	workspaces, _ := store.WorkspaceRepo.List(ctx)
	if len(workspaces) != 1 {
		t.Fatalf("workspace count = %d", len(workspaces))
	}
	ws := workspaces[0]
	if ws.Status != model.WorkspaceStatusError {
		t.Fatalf("status = %s, want error (never stuck in creating)", ws.Status)
	}
	if !strings.Contains(ws.StatusDetail, "link table unavailable") {
		t.Fatalf("detail = %q, want the cause retained", ws.StatusDetail)
	}
	if len(engine.containers) != 0 {
		t.Fatalf("no containers should exist: %v", engine.containers)
	}
}

func TestRecreateRetriesAfterFailedCreate(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	engine.startErrFn = func(ref string) error {
		if strings.HasPrefix(ref, "harbor-editor-") {
			return errors.New("editor image pull failed")
		}
		return nil
	}
	if _, err := uc.Create(ctx, &CreateInput{OwnerID: "u-1", Name: "flaky"}); err == nil {
		t.Fatalf("expected create failure")
	}
	workspaces, _ := store.WorkspaceRepo.List(ctx)
	ws := workspaces[0]

	// Once the underlying cause clears, recreate brings the pair up.
	engine.startErrFn = nil
	out, err := uc.Recreate(ctx, &RecreateInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if out.Workspace.Status != model.WorkspaceStatusRunning {
		t.Fatalf("status = %s, want running", out.Workspace.Status)
	}
	if out.Workspace.StatusDetail != "" {
		t.Fatalf("detail should clear on success: %q", out.Workspace.StatusDetail)
	}
	agent := engine.container("harbor-agent-" + ws.ID)
	editor := engine.container("harbor-editor-" + ws.ID)
	if agent == nil || !agent.running || editor == nil || !editor.running {
		t.Fatalf("pair not running after recreate")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})

	if _, err := uc.Stop(ctx, &StopInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	// Repeated stops on a stopped workspace are no-op successes.
	for i := 0; i < 3; i++ {
		out, err := uc.Stop(ctx, &StopInput{WorkspaceID: ws.ID})
		if err != nil {
			t.Fatalf("stop %d: %v", i, err)
		}
		if out.Workspace.Status != model.WorkspaceStatusStopped {
			t.Fatalf("stop %d: status = %s", i, out.Workspace.Status)
		}
	}
	if agent := engine.container("harbor-agent-" + ws.ID); agent == nil || agent.running {
		t.Fatalf("agent should exist stopped")
	}
}

func TestStopFailureKeepsPriorStatus(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	engine.stopErr["harbor-agent-"+ws.ID] = errors.New("engine busy")

	if _, err := uc.Stop(ctx, &StopInput{WorkspaceID: ws.ID}); err == nil {
		t.Fatalf("expected stop failure")
	}
	got, _ := store.WorkspaceRepo.Get(ctx, ws.ID)
	if got.Status != model.WorkspaceStatusRunning {
		t.Fatalf("status = %s, want running (retry safe)", got.Status)
	}
}

func TestDeleteToleratesAbsentContainers(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})

	// Containers vanish out-of-band.
	delete(engine.containers, "harbor-agent-"+ws.ID)
	delete(engine.containers, "harbor-editor-"+ws.ID)

	if _, err := uc.Delete(ctx, &DeleteInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.WorkspaceRepo.Get(ctx, ws.ID); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Fatalf("record should be gone, got %v", err)
	}
}

func TestDeleteKeepRecord(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	if _, err := uc.Delete(ctx, &DeleteInput{WorkspaceID: ws.ID, KeepRecord: true}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.WorkspaceRepo.Get(ctx, ws.ID)
	if err != nil {
		t.Fatalf("record should remain: %v", err)
	}
	if got.Status != model.WorkspaceStatusDeleted {
		t.Fatalf("status = %s, want deleted", got.Status)
	}
}

func TestStartRecreatesWithCurrentEnvironments(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	e1 := seedEnvironment(t, store, "u-1", "base", map[string]string{"X": "1"})
	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo", EnvironmentIDs: []string{e1.ID}})

	if _, err := uc.Stop(ctx, &StopInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// Variable changes while stopped apply on the next start.
	e1.Variables = map[string]string{"X": "changed"}
	if err := store.EnvironmentRepo.Update(ctx, e1); err != nil {
		t.Fatalf("update env: %v", err)
	}

	out, err := uc.Start(ctx, &StartInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Workspace.Status != model.WorkspaceStatusRunning {
		t.Fatalf("status = %s", out.Workspace.Status)
	}
	agent := engine.container("harbor-agent-" + ws.ID)
	if agent == nil || agent.spec.Env["X"] != "changed" {
		t.Fatalf("start did not apply current merge: %+v", agent)
	}

	// Starting a running workspace is a no-op success.
	if _, err := uc.Start(ctx, &StartInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("idempotent start: %v", err)
	}
}

func TestSyncDeferredWhenStopped(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	if _, err := uc.Stop(ctx, &StopInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatalf("stop: %v", err)
	}

	out, err := uc.Sync(ctx, &SyncInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if out.Result.Outcome != SyncDeferred {
		t.Fatalf("outcome = %s, want deferred", out.Result.Outcome)
	}
	if len(engine.execCalls) != 0 {
		t.Fatalf("no exec expected for a stopped workspace")
	}
}

func TestSyncAppliedPushesMergedVariables(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	e1 := seedEnvironment(t, store, "u-1", "base", map[string]string{"A": "1"})
	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo", EnvironmentIDs: []string{e1.ID}})

	out, err := uc.Sync(ctx, &SyncInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if out.Result.Outcome != SyncApplied {
		t.Fatalf("outcome = %s, want applied", out.Result.Outcome)
	}
	if len(engine.execCalls) != 1 {
		t.Fatalf("exec calls = %d", len(engine.execCalls))
	}
	if content := decodePushedEnv(t, engine.execCalls[0]); !strings.Contains(content, "A=1") {
		t.Fatalf("pushed file missing variables: %q", content)
	}
}

// decodePushedEnv extracts and decodes the base64 payload from a captured
// variable-push exec command.
func decodePushedEnv(t *testing.T, cmd []string) string {
	t.Helper()
	if len(cmd) != 3 || cmd[0] != "sh" || cmd[1] != "-c" {
		t.Fatalf("unexpected exec command: %v", cmd)
	}
	fields := strings.Fields(cmd[2])
	for i, f := range fields {
		if f == "echo" && i+1 < len(fields) {
			decoded, err := base64.StdEncoding.DecodeString(fields[i+1])
			if err != nil {
				t.Fatalf("payload not valid base64: %v", err)
			}
			return string(decoded)
		}
	}
	t.Fatalf("no payload found in script: %s", cmd[2])
	return ""
}

func TestSyncHostileValuesStayData(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	// A value carrying newlines and shell-looking lines must reach the
	// env file byte for byte, never the shell.
	hostile := "x\nHARBOR_EOF\necho injected > /tmp/owned"
	e1 := seedEnvironment(t, store, "u-1", "base", map[string]string{"A": hostile})
	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo", EnvironmentIDs: []string{e1.ID}})

	out, err := uc.Sync(ctx, &SyncInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if out.Result.Outcome != SyncApplied {
		t.Fatalf("outcome = %s, want applied", out.Result.Outcome)
	}
	script := engine.execCalls[0][2]
	if strings.Contains(script, "echo injected") {
		t.Fatalf("raw value leaked into the shell script: %s", script)
	}
	if content := decodePushedEnv(t, engine.execCalls[0]); content != "A="+hostile {
		t.Fatalf("pushed file = %q, want %q", content, "A="+hostile)
	}
}

func TestSyncEngineErrorIsNonFatal(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	engine.execErr = errors.New("connection refused")

	out, err := uc.Sync(ctx, &SyncInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("sync must not surface engine errors: %v", err)
	}
	if out.Result.Outcome != SyncFailed {
		t.Fatalf("outcome = %s, want failed", out.Result.Outcome)
	}
}

func TestConfigureEnvironmentsAllOrNothing(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	mine := seedEnvironment(t, store, "u-1", "mine", map[string]string{"A": "1"})
	theirs := seedEnvironment(t, store, "u-2", "theirs", map[string]string{"B": "2"})
	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo", EnvironmentIDs: []string{mine.ID}})

	_, err := uc.ConfigureEnvironments(ctx, &ConfigureEnvironmentsInput{
		WorkspaceID:    ws.ID,
		EnvironmentIDs: []string{mine.ID, theirs.ID},
	})
	if !errors.Is(err, model.ErrOwnerMismatch) {
		t.Fatalf("expected ErrOwnerMismatch, got %v", err)
	}
	// The prior selection is untouched.
	ids, _ := store.WorkspaceRepo.LinkedEnvironmentIDs(ctx, ws.ID)
	if len(ids) != 1 || ids[0] != mine.ID {
		t.Fatalf("links changed on rejected update: %v", ids)
	}
}

func TestConfigureEnvironmentsReplacesAndSyncs(t *testing.T) {
	engine := newFakeEngine()
	uc, store := newTestUseCase(engine)
	ctx := context.Background()

	e1 := seedEnvironment(t, store, "u-1", "one", map[string]string{"A": "1"})
	e2 := seedEnvironment(t, store, "u-1", "two", map[string]string{"A": "2"})
	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo", EnvironmentIDs: []string{e1.ID}})

	out, err := uc.ConfigureEnvironments(ctx, &ConfigureEnvironmentsInput{
		WorkspaceID:    ws.ID,
		EnvironmentIDs: []string{e1.ID, e2.ID},
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if out.Sync.Outcome != SyncApplied {
		t.Fatalf("sync outcome = %s", out.Sync.Outcome)
	}
	ids, _ := store.WorkspaceRepo.LinkedEnvironmentIDs(ctx, ws.ID)
	if len(ids) != 2 || ids[1] != e2.ID {
		t.Fatalf("links = %v", ids)
	}
	content := decodePushedEnv(t, engine.execCalls[len(engine.execCalls)-1])
	if !strings.Contains(content, "A=2") {
		t.Fatalf("pushed file should carry the last writer: %q", content)
	}
}

func TestSessionNotFoundOnExecError(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	engine.execErr = errors.New("connection refused")

	out, err := uc.Session(ctx, &SessionInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("session probe must not surface transport errors: %v", err)
	}
	if out.Found || out.SessionID != "" {
		t.Fatalf("expected no session, got %+v", out)
	}
}

func TestSessionFound(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	engine.execOut = "ses_ab12\n"

	out, err := uc.Session(ctx, &SessionInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if !out.Found || out.SessionID != "ses_ab12" {
		t.Fatalf("session = %+v", out)
	}
}

func TestStatusReportsLiveState(t *testing.T) {
	engine := newFakeEngine()
	uc, _ := newTestUseCase(engine)
	ctx := context.Background()

	ws := createWorkspace(t, uc, &CreateInput{OwnerID: "u-1", Name: "demo"})
	// Editor vanishes out-of-band; status must show the divergence.
	delete(engine.containers, "harbor-editor-"+ws.ID)

	out, err := uc.Status(ctx, &StatusInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out.Agent == nil || !out.Agent.Running {
		t.Fatalf("agent state = %+v", out.Agent)
	}
	if out.Editor != nil {
		t.Fatalf("editor should report absent, got %+v", out.Editor)
	}
}
