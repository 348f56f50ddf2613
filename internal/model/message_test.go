// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package model

import "testing"

func TestSenderDisplayName(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "You"},
		{SenderAI, "DocuAI"},
		{SenderSystem, "System"},
		{Sender("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.sender.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.sender, got, tt.want)
		}
	}
}

func TestSenderRole(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "user"},
		{SenderAI, "assistant"},
		{SenderSystem, "system"},
	}
	for _, tt := range tests {
		if got := tt.sender.Role(); got != tt.want {
			t.Errorf("Role(%q) = %q, want %q", tt.sender, got, tt.want)
		}
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")
	if msg.ID == "" {
		t.Error("expected generated ID")
	}
	if msg.Sender != SenderUser {
		t.Errorf("Sender = %q, want %q", msg.Sender, SenderUser)
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
	if NewUserMessage("x").ID == NewUserMessage("x").ID {
		t.Error("two messages share an ID")
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewAIMessage("line one\nline two with more text than fits")
	got := msg.Preview(20)
	if len([]rune(got)) > 20 {
		t.Errorf("Preview(20) = %q, longer than 20 runes", got)
	}
	for _, r := range got {
		if r == '\n' {
			t.Errorf("Preview(20) = %q contains a newline", got)
		}
	}
}

func TestMessageIsEmpty(t *testing.T) {
	if !(Message{}).IsEmpty() {
		t.Error("zero message should be empty")
	}
	if NewUserMessage("x").IsEmpty() {
		t.Error("non-empty message reported empty")
	}
}
