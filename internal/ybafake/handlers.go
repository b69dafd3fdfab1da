/*
 * Copyright (c) YugabyteDB, Inc.
 */

package ybafake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	ybaclient "github.com/yugabyte/platform-go-client"
	"golang.org/x/exp/slices"
)

func (s *Server) recordAndAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     bytes.TrimSpace(body),
		})
		s.mu.Unlock()
		if r.Header.Get("X-AUTH-YW-API-TOKEN") != APIToken {
			writeError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["cUUID"] != s.CustomerUUID {
			writeError(w, r, http.StatusBadRequest, "Invalid Customer UUID")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(util.YbaStructuredError{
		Error:      msg,
		HTTPMethod: r.Method,
		RequestURI: r.URL.RequestURI(),
		Success:    false,
	})
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

func (s *Server) sessionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ybaclient.SessionInfo{
		CustomerUUID: ybaclient.PtrString(s.CustomerUUID),
		UserUUID:     ybaclient.PtrString(uuid.NewString()),
	})
}

func (s *Server) listUniverses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := r.URL.Query().Get("name")
	out := make([]ybaclient.UniverseResp, 0)
	for _, u := range s.universes {
		if name == "" || u.GetName() == name {
			out = append(out, *u)
		}
	}
	writeJSON(w, out)
}

func (s *Server) getUniverse(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.universes[mux.Vars(r)["uUUID"]]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Cannot find universe "+mux.Vars(r)["uUUID"])
		return
	}
	writeJSON(w, u)
}

func (s *Server) listNamespaces(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]ybaclient.NamespaceInfoResp{}, s.namespaces[mux.Vars(r)["uUUID"]]...)
	writeJSON(w, out)
}

func (s *Server) listTables(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]ybaclient.TableInfoResp{}, s.tables[mux.Vars(r)["uUUID"]]...)
	writeJSON(w, out)
}

func (s *Server) listConfigs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, append([]ybaclient.CustomerConfigUI{}, s.configs...))
}

func (s *Server) getXClusterConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, ok := s.xclusterConfigs[mux.Vars(r)["xUUID"]]
	if !ok {
		writeError(w, r, http.StatusNotFound, "Cannot find xCluster config")
		return
	}
	writeJSON(w, x)
}

func (s *Server) editXClusterConfig(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.XClusterConfigEditFormData{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	xUUID := mux.Vars(r)["xUUID"]
	x, ok := s.xclusterConfigs[xUUID]
	if !ok {
		writeError(w, r, http.StatusNotFound, "Cannot find xCluster config")
		return
	}
	status := form.GetStatus()
	if status != util.PausedXClusterStatus && status != util.RunningXClusterStatus {
		writeError(w, r, http.StatusBadRequest, "Unsupported status "+status)
		return
	}
	writeJSON(w, s.newTask("Edit xCluster Config", xUUID, func() {
		paused := status == util.PausedXClusterStatus
		x.Status = ybaclient.PtrString(status)
		x.Paused = ybaclient.PtrBool(paused)
		for _, dr := range s.drConfigs {
			if dr.XClusterConfigUUID == xUUID {
				dr.Status = status
				dr.Paused = paused
			}
		}
	}))
}

func (s *Server) createDrConfig(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.DrConfigCreateForm{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	source, ok := s.universes[form.SourceUniverseUUID]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Cannot find universe "+form.SourceUniverseUUID)
		return
	}
	target, ok := s.universes[form.TargetUniverseUUID]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Cannot find universe "+form.TargetUniverseUUID)
		return
	}
	if len(source.GetDrConfigUuidsAsSource()) > 0 {
		writeError(w, r, http.StatusBadRequest,
			"Universe "+source.GetName()+" is already the source of a DR config")
		return
	}
	if len(form.Dbs) == 0 {
		writeError(w, r, http.StatusBadRequest, "dbs cannot be empty")
		return
	}
	if form.BootstrapParams == nil ||
		form.BootstrapParams.BackupRequestParams.StorageConfigUUID == "" {
		writeError(w, r, http.StatusBadRequest, "storageConfigUUID is required")
		return
	}
	drUUID := uuid.NewString()
	writeJSON(w, s.newTask("Create DR Config", drUUID, func() {
		now := time.Now().UTC().Format(time.RFC3339)
		tables := make([]string, 0)
		for _, ns := range s.namespaces[source.GetUniverseUUID()] {
			if !slices.Contains(form.Dbs, ns.GetNamespaceUUID()) {
				continue
			}
			for _, t := range s.tables[source.GetUniverseUUID()] {
				if t.GetKeySpace() == ns.GetName() && t.GetTableType() == ns.GetTableType() {
					tables = append(tables, t.GetTableID())
				}
			}
		}
		xUUID := uuid.NewString()
		s.xclusterConfigs[xUUID] = &ybaclient.XClusterConfigGetResp{
			Uuid:               ybaclient.PtrString(xUUID),
			Name:               ybaclient.PtrString("--DR-CONFIG-" + form.Name),
			Status:             ybaclient.PtrString(util.RunningXClusterStatus),
			Paused:             ybaclient.PtrBool(false),
			SourceUniverseUUID: source.UniverseUUID,
			TargetUniverseUUID: target.UniverseUUID,
			Tables:             &tables,
			Type:               ybaclient.PtrString("Txn"),
			UsedForDr:          ybaclient.PtrBool(true),
		}
		s.drConfigs[drUUID] = &model.DrConfig{
			UUID:                   drUUID,
			Name:                   form.Name,
			XClusterConfigUUID:     xUUID,
			PrimaryUniverseUUID:    source.GetUniverseUUID(),
			DrReplicaUniverseUUID:  target.GetUniverseUUID(),
			State:                  util.ReplicatingDrState,
			Status:                 util.RunningXClusterStatus,
			PrimaryUniverseState:   "Replicating data",
			DrReplicaUniverseState: "Receiving data, Ready for reads",
			Tables:                 append([]string{}, tables...),
			Dbs:                    append([]string{}, form.Dbs...),
			BootstrapParams:        *form.BootstrapParams,
			CreateTime:             now,
			ModifyTime:             now,
		}
		source.SetDrConfigUuidsAsSource(append(source.GetDrConfigUuidsAsSource(), drUUID))
		target.SetDrConfigUuidsAsTarget(append(target.GetDrConfigUuidsAsTarget(), drUUID))
	}))
}

// lookupDrConfig must be called with s.mu held
func (s *Server) lookupDrConfig(w http.ResponseWriter, r *http.Request) (*model.DrConfig, bool) {
	dr, ok := s.drConfigs[mux.Vars(r)["drUUID"]]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Cannot find DR config "+mux.Vars(r)["drUUID"])
	}
	return dr, ok
}

func (s *Server) getDrConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, dr)
}

func (s *Server) deleteDrConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.newTask("Delete DR Config", dr.UUID, func() {
		delete(s.drConfigs, dr.UUID)
		delete(s.xclusterConfigs, dr.XClusterConfigUUID)
		for _, u := range s.universes {
			u.SetDrConfigUuidsAsSource(removeString(u.GetDrConfigUuidsAsSource(), dr.UUID))
			u.SetDrConfigUuidsAsTarget(removeString(u.GetDrConfigUuidsAsTarget(), dr.UUID))
		}
	}))
}

func (s *Server) setTables(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.DrConfigSetTablesForm{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	tables := form.GetTables()
	if len(tables) == 0 {
		writeError(w, r, http.StatusBadRequest, "tables cannot be empty")
		return
	}
	writeJSON(w, s.newTask("Edit DR Config Tables", dr.UUID, func() {
		dr.Tables = append([]string{}, tables...)
		if x, ok := s.xclusterConfigs[dr.XClusterConfigUUID]; ok {
			x.SetTables(append([]string{}, tables...))
		}
		dr.ModifyTime = time.Now().UTC().Format(time.RFC3339)
	}))
}

func (s *Server) swapRoles(dr *model.DrConfig) {
	oldPrimary, oldReplica := dr.PrimaryUniverseUUID, dr.DrReplicaUniverseUUID
	dr.PrimaryUniverseUUID, dr.DrReplicaUniverseUUID = oldReplica, oldPrimary
	if p, ok := s.universes[oldPrimary]; ok {
		p.SetDrConfigUuidsAsSource(removeString(p.GetDrConfigUuidsAsSource(), dr.UUID))
		p.SetDrConfigUuidsAsTarget(append(p.GetDrConfigUuidsAsTarget(), dr.UUID))
	}
	if rep, ok := s.universes[oldReplica]; ok {
		rep.SetDrConfigUuidsAsTarget(removeString(rep.GetDrConfigUuidsAsTarget(), dr.UUID))
		rep.SetDrConfigUuidsAsSource(append(rep.GetDrConfigUuidsAsSource(), dr.UUID))
	}
	if x, ok := s.xclusterConfigs[dr.XClusterConfigUUID]; ok {
		x.SetSourceUniverseUUID(dr.PrimaryUniverseUUID)
		x.SetTargetUniverseUUID(dr.DrReplicaUniverseUUID)
	}
	dr.ModifyTime = time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) switchover(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.DrConfigSwitchoverForm{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	// the form names the universes in their new roles
	if form.GetPrimaryUniverseUuid() != dr.DrReplicaUniverseUUID ||
		form.GetDrReplicaUniverseUuid() != dr.PrimaryUniverseUUID {
		writeError(w, r, http.StatusBadRequest,
			"primaryUniverseUuid must be the current DR replica")
		return
	}
	writeJSON(w, s.newTask("Switchover DR Config", dr.UUID, func() {
		s.swapRoles(dr)
		dr.State = util.ReplicatingDrState
	}))
}

func (s *Server) failover(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.DrConfigFailoverForm{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	if form.GetPrimaryUniverseUuid() != dr.DrReplicaUniverseUUID ||
		form.GetDrReplicaUniverseUuid() != dr.PrimaryUniverseUUID {
		writeError(w, r, http.StatusBadRequest,
			"primaryUniverseUuid must be the current DR replica")
		return
	}
	if len(form.GetNamespaceIdSafetimeEpochUsMap()) == 0 {
		writeError(w, r, http.StatusBadRequest, "namespaceIdSafetimeEpochUsMap cannot be empty")
		return
	}
	writeJSON(w, s.newTask("Failover DR Config", dr.UUID, func() {
		s.swapRoles(dr)
		dr.State = util.HaltedDrState
		dr.Status = util.FailedXClusterStatus
	}))
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	form := ybaclient.DrConfigRestartForm{}
	if !readJSON(w, r, &form) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.newTask("Restart DR Config", dr.UUID, func() {
		if len(form.Dbs) > 0 {
			dr.Dbs = append([]string{}, form.Dbs...)
		}
		dr.State = util.ReplicatingDrState
		dr.Status = util.RunningXClusterStatus
		dr.Paused = false
		if x, ok := s.xclusterConfigs[dr.XClusterConfigUUID]; ok {
			x.Status = ybaclient.PtrString(util.RunningXClusterStatus)
			x.Paused = ybaclient.PtrBool(false)
		}
		dr.ModifyTime = time.Now().UTC().Format(time.RFC3339)
	}))
}

func (s *Server) sync(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.newTask("Sync DR Config", dr.UUID, func() {
		dr.ModifyTime = time.Now().UTC().Format(time.RFC3339)
	}))
}

func (s *Server) safetime(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dr, ok := s.lookupDrConfig(w, r)
	if !ok {
		return
	}
	if st, ok := s.safetimes[dr.UUID]; ok {
		writeJSON(w, ybaclient.DrConfigSafetimeResp{Safetimes: &st})
		return
	}
	safetimes := make([]ybaclient.NamespaceSafetime, 0)
	now := time.Now()
	for _, ns := range s.namespaces[dr.PrimaryUniverseUUID] {
		if !slices.Contains(dr.Dbs, ns.GetNamespaceUUID()) {
			continue
		}
		safetimes = append(safetimes, ybaclient.NamespaceSafetime{
			NamespaceId:         ns.GetNamespaceUUID(),
			NamespaceName:       ns.GetName(),
			SafetimeEpochUs:     now.Add(-time.Second).UnixMicro(),
			SafetimeLagUs:       1000000,
			SafetimeSkewUs:      2000,
			EstimatedDataLossMs: 1000,
		})
	}
	writeJSON(w, ybaclient.DrConfigSafetimeResp{Safetimes: &safetimes})
}

func (s *Server) taskStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[mux.Vars(r)["tUUID"]]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid Task UUID")
		return
	}
	writeJSON(w, t.poll())
}

func (s *Server) failedSubtasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[mux.Vars(r)["tUUID"]]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid Task UUID")
		return
	}
	failures := append([]ybaclient.SubtaskData{}, t.failures...)
	writeJSON(w, ybaclient.FailedSubtasks{FailedSubTasks: &failures})
}

func removeString(in []string, v string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
