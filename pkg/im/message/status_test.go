package message

import "testing"

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "Success"},
		{StatusFailure, "Failure"},
		{StatusUnsupportedEndpoint, "UnsupportedEndpoint"},
		{StatusUnsupportedAttribute, "UnsupportedAttribute"},
		{StatusConstraintError, "ConstraintError"},
		{StatusResourceExhausted, "ResourceExhausted"},
		{StatusUnsupportedCluster, "UnsupportedCluster"},
		{Status(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("Status.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_IsSuccess(t *testing.T) {
	if !StatusSuccess.IsSuccess() {
		t.Error("StatusSuccess.IsSuccess() should be true")
	}
	if StatusFailure.IsSuccess() {
		t.Error("StatusFailure.IsSuccess() should be false")
	}
}

func TestOpcode_String(t *testing.T) {
	tests := []struct {
		opcode Opcode
		want   string
	}{
		{OpcodeStatusResponse, "StatusResponse"},
		{OpcodeReadRequest, "ReadRequest"},
		{OpcodeSubscribeRequest, "SubscribeRequest"},
		{OpcodeSubscribeResponse, "SubscribeResponse"},
		{OpcodeReportData, "ReportData"},
		{Opcode(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.opcode.String(); got != tt.want {
				t.Errorf("Opcode.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
