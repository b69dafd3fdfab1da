/*
 * Copyright (c) YugabyteDB, Inc.
 */

// Package ybafake is an in-process YugabyteDB Anywhere control plane serving
// the universe, table, DR config and task routes used by the CLI. It keeps
// state in memory and applies the effect of a task once the task is observed
// in the Success state.
package ybafake

import (
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// APIToken is the only token the fake server accepts
const APIToken = "fake-api-token"

// TaskStep is one status a task reports on a poll
type TaskStep struct {
	Status  string
	Percent float64
}

// Request is a call recorded by the fake server
type Request struct {
	Method   string
	Path     string
	RawQuery string
	// Body is trimmed of surrounding whitespace
	Body []byte
}

// Table describes a table registered with AddTable
type Table struct {
	// ID is generated when empty
	ID       string
	Name     string
	Keyspace string
	// Type defaults to PGSQL_TABLE_TYPE
	Type      string
	Schema    string
	SizeBytes float64
	Index     bool
}

type taskScript struct {
	steps    []TaskStep
	failures []string
}

type task struct {
	data     model.TaskStatus
	script   taskScript
	polled   int
	effect   func()
	applied  bool
	failures []ybaclient.SubtaskData
}

// Server is a fake YugabyteDB Anywhere
type Server struct {
	*httptest.Server

	CustomerUUID string

	mu              sync.Mutex
	universes       map[string]*ybaclient.UniverseResp
	namespaces      map[string][]ybaclient.NamespaceInfoResp
	tables          map[string][]ybaclient.TableInfoResp
	configs         []ybaclient.CustomerConfigUI
	drConfigs       map[string]*model.DrConfig
	xclusterConfigs map[string]*ybaclient.XClusterConfigGetResp
	safetimes       map[string][]ybaclient.NamespaceSafetime
	tasks           map[string]*task
	scripts         []taskScript
	requests        []Request
}

// NewServer starts a fake YugabyteDB Anywhere. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		CustomerUUID:    uuid.NewString(),
		universes:       make(map[string]*ybaclient.UniverseResp),
		namespaces:      make(map[string][]ybaclient.NamespaceInfoResp),
		tables:          make(map[string][]ybaclient.TableInfoResp),
		drConfigs:       make(map[string]*model.DrConfig),
		xclusterConfigs: make(map[string]*ybaclient.XClusterConfigGetResp),
		safetimes:       make(map[string][]ybaclient.NamespaceSafetime),
		tasks:           make(map[string]*task),
	}
	r := mux.NewRouter()
	r.Use(s.recordAndAuthenticate)
	r.HandleFunc("/api/v1/session_info", s.sessionInfo).Methods("GET")

	c := r.PathPrefix("/api/v1/customers/{cUUID}").Subrouter()
	c.Use(s.checkCustomer)
	c.HandleFunc("/universes", s.listUniverses).Methods("GET")
	c.HandleFunc("/universes/{uUUID}", s.getUniverse).Methods("GET")
	c.HandleFunc("/universes/{uUUID}/namespaces", s.listNamespaces).Methods("GET")
	c.HandleFunc("/universes/{uUUID}/tables", s.listTables).Methods("GET")
	c.HandleFunc("/configs", s.listConfigs).Methods("GET")
	c.HandleFunc("/xcluster_configs/{xUUID}", s.getXClusterConfig).Methods("GET")
	c.HandleFunc("/xcluster_configs/{xUUID}", s.editXClusterConfig).Methods("PUT")
	c.HandleFunc("/dr_configs", s.createDrConfig).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}", s.getDrConfig).Methods("GET")
	c.HandleFunc("/dr_configs/{drUUID}", s.deleteDrConfig).Methods("DELETE")
	c.HandleFunc("/dr_configs/{drUUID}/set_tables", s.setTables).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}/switchover", s.switchover).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}/failover", s.failover).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}/restart", s.restart).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}/sync", s.sync).Methods("POST")
	c.HandleFunc("/dr_configs/{drUUID}/safetime", s.safetime).Methods("GET")
	c.HandleFunc("/tasks/{tUUID}", s.taskStatus).Methods("GET")
	c.HandleFunc("/tasks/{tUUID}/failed", s.failedSubtasks).Methods("GET")

	s.Server = httptest.NewServer(r)
	return s
}

// NewTableID returns a table ID in the 32 hex digit format used by YugabyteDB
func NewTableID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SoftwareVersion is the YugabyteDB version of every fake universe
const SoftwareVersion = "2.20.2.0-b145"

// AddUniverse registers a universe with a single live node and returns its UUID
func (s *Server) AddUniverse(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	universeUUID := uuid.NewString()
	u := &ybaclient.UniverseResp{
		UniverseUUID:          ybaclient.PtrString(universeUUID),
		Name:                  ybaclient.PtrString(name),
		CreationDate:          ybaclient.PtrString(time.Now().UTC().Format(time.RFC3339)),
		DrConfigUuidsAsSource: &[]string{},
		DrConfigUuidsAsTarget: &[]string{},
		UniverseDetails: &ybaclient.UniverseDefinitionTaskParamsResp{
			Clusters: []ybaclient.Cluster{{
				ClusterType: "PRIMARY",
				UserIntent: ybaclient.UserIntent{
					YbSoftwareVersion: ybaclient.PtrString(SoftwareVersion),
				},
			}},
			NodeDetailsSet: &[]ybaclient.NodeDetailsResp{{
				NodeName:  ybaclient.PtrString(name + "-n1"),
				State:     ybaclient.PtrString(util.LiveNodeState),
				IsMaster:  ybaclient.PtrBool(true),
				IsTserver: ybaclient.PtrBool(true),
				CloudInfo: &ybaclient.CloudSpecificInfo{
					Cloud:     ybaclient.PtrString("aws"),
					Region:    ybaclient.PtrString("us-west-2"),
					Az:        ybaclient.PtrString("us-west-2a"),
					PrivateIp: ybaclient.PtrString("10.0.0.1"),
				},
			}},
		},
	}
	s.universes[universeUUID] = u
	return universeUUID
}

// AddNamespace registers a database on a universe and returns its UUID
func (s *Server) AddNamespace(universeUUID, name, tableType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	namespaceUUID := uuid.NewString()
	s.namespaces[universeUUID] = append(s.namespaces[universeUUID], ybaclient.NamespaceInfoResp{
		NamespaceUUID: ybaclient.PtrString(namespaceUUID),
		Name:          ybaclient.PtrString(name),
		TableType:     ybaclient.PtrString(tableType),
	})
	return namespaceUUID
}

// AddTable registers a table on a universe and returns its ID
func (s *Server) AddTable(universeUUID string, t Table) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = NewTableID()
	}
	if t.Type == "" {
		t.Type = util.PgSqlTableType
	}
	if t.Schema == "" && t.Type == util.PgSqlTableType {
		t.Schema = "public"
	}
	relationType := util.UserTableRelation
	if t.Index {
		relationType = util.IndexTableRelation
	}
	resp := ybaclient.TableInfoResp{
		TableID:      ybaclient.PtrString(t.ID),
		TableUUID:    ybaclient.PtrString(t.ID),
		TableName:    ybaclient.PtrString(t.Name),
		KeySpace:     ybaclient.PtrString(t.Keyspace),
		TableType:    ybaclient.PtrString(t.Type),
		RelationType: ybaclient.PtrString(relationType),
		SizeBytes:    &t.SizeBytes,
	}
	if t.Schema != "" {
		resp.PgSchemaName = ybaclient.PtrString(t.Schema)
	}
	s.tables[universeUUID] = append(s.tables[universeUUID], resp)
	return t.ID
}

// AddCustomerConfig registers a customer config of the given type and returns its UUID
func (s *Server) AddCustomerConfig(configName, configType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	configUUID := uuid.NewString()
	s.configs = append(s.configs, ybaclient.CustomerConfigUI{
		ConfigUUID:   ybaclient.PtrString(configUUID),
		ConfigName:   configName,
		CustomerUUID: s.CustomerUUID,
		Data:         map[string]interface{}{},
		Name:         "S3",
		Type:         configType,
		State:        ybaclient.PtrString("Active"),
	})
	return configUUID
}

// AddStorageConfig registers a backup storage config and returns its UUID
func (s *Server) AddStorageConfig(configName string) string {
	return s.AddCustomerConfig(configName, util.StorageCustomerConfigType)
}

// SetSafetimes overrides the safetimes reported for a DR config
func (s *Server) SetSafetimes(drUUID string, safetimes []ybaclient.NamespaceSafetime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.safetimes[drUUID] = safetimes
}

// NextTaskScript sets the statuses the next submitted task reports, one per
// poll; the last one repeats. A script ending in Failure reports failures as
// the errors of its failed subtasks. Without a script a task succeeds on the
// first poll.
func (s *Server) NextTaskScript(steps []TaskStep, failures ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, taskScript{steps: steps, failures: failures})
}

// SubmitTask registers a task that is not tied to any resource change
func (s *Server) SubmitTask(title string) ybaclient.YBPTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newTask(title, "", nil)
}

// Universe returns a copy of a universe
func (s *Server) Universe(universeUUID string) (ybaclient.UniverseResp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.universes[universeUUID]
	if !ok {
		return ybaclient.UniverseResp{}, false
	}
	c := *u
	c.DrConfigUuidsAsSource = copyStrings(u.DrConfigUuidsAsSource)
	c.DrConfigUuidsAsTarget = copyStrings(u.DrConfigUuidsAsTarget)
	return c, true
}

// DrConfig returns a copy of a DR config
func (s *Server) DrConfig(drUUID string) (model.DrConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.drConfigs[drUUID]
	if !ok {
		return model.DrConfig{}, false
	}
	c := *dr
	c.Tables = append([]string{}, dr.Tables...)
	return c, true
}

// Requests returns the calls received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request{}, s.requests...)
}

// CountRequests counts the calls with the given method whose path ends with suffix
func (s *Server) CountRequests(method, suffix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasSuffix(r.Path, suffix) {
			n++
		}
	}
	return n
}

// ResetRequests clears the request log
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// newTask must be called with s.mu held
func (s *Server) newTask(title, resourceUUID string, effect func()) ybaclient.YBPTask {
	script := taskScript{steps: []TaskStep{{Status: util.SuccessTaskStatus, Percent: 100}}}
	if len(s.scripts) > 0 {
		script = s.scripts[0]
		s.scripts = s.scripts[1:]
	}
	t := &task{
		data: model.TaskStatus{
			ID:         uuid.NewString(),
			Title:      title,
			Status:     util.CreatedTaskStatus,
			TargetUUID: resourceUUID,
			CreateTime: time.Now().UTC().Format(time.RFC3339),
		},
		script: script,
		effect: effect,
	}
	s.tasks[t.data.ID] = t
	r := ybaclient.YBPTask{TaskUUID: ybaclient.PtrString(t.data.ID)}
	if resourceUUID != "" {
		r.ResourceUUID = ybaclient.PtrString(resourceUUID)
	}
	return r
}

// poll advances a task by one step and applies its effect on success. Must be
// called with s.mu held.
func (t *task) poll() model.TaskStatus {
	steps := t.script.steps
	i := t.polled
	if i >= len(steps) {
		i = len(steps) - 1
	}
	t.polled++
	step := steps[i]
	t.data.Status = step.Status
	t.data.Percent = step.Percent
	switch step.Status {
	case util.SuccessTaskStatus:
		if !t.applied && t.effect != nil {
			t.effect()
		}
		t.applied = true
		t.data.Percent = 100
		t.data.CompletionTime = time.Now().UTC().Format(time.RFC3339)
	case util.FailureTaskStatus, util.AbortedTaskStatus:
		if t.failures == nil {
			t.failures = make([]ybaclient.SubtaskData, 0)
			for _, msg := range t.script.failures {
				t.failures = append(t.failures, ybaclient.SubtaskData{
					SubTaskUUID:  ybaclient.PtrString(uuid.NewString()),
					SubTaskType:  ybaclient.PtrString("XClusterConfigSetup"),
					SubTaskState: ybaclient.PtrString(util.FailureTaskStatus),
					ErrorString:  ybaclient.PtrString(msg),
				})
			}
		}
		t.data.CompletionTime = time.Now().UTC().Format(time.RFC3339)
	}
	return t.data
}

// RemoveCustomerConfig deletes a customer config
func (s *Server) RemoveCustomerConfig(configUUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]ybaclient.CustomerConfigUI, 0, len(s.configs))
	for _, c := range s.configs {
		if c.GetConfigUUID() != configUUID {
			kept = append(kept, c)
		}
	}
	s.configs = kept
}

func copyStrings(in *[]string) *[]string {
	if in == nil {
		return nil
	}
	out := append([]string{}, *in...)
	return &out
}
