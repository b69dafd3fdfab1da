/*
 * Copyright (c) YugabyteDB, Inc.
 */

package model

// TaskStatus is the status of a task as returned by GET tasks/{uuid}. The
// generated client returns it as a plain map.
type TaskStatus struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Percent        float64 `json:"percent"`
	Type           string  `json:"type,omitempty"`
	Target         string  `json:"target,omitempty"`
	TargetUUID     string  `json:"targetUUID,omitempty"`
	CreateTime     string  `json:"createTime,omitempty"`
	CompletionTime string  `json:"completionTime,omitempty"`
}
