package spake2p

import (
	"bytes"
	"testing"
)

func TestProverVerifierAgree(t *testing.T) {
	pin := []byte("12345678")
	salt := bytes.Repeat([]byte{0x42}, 32)

	w0, w1, err := ComputeW0W1(pin, salt)
	if err != nil {
		t.Fatalf("ComputeW0W1: %v", err)
	}
	L := ComputeL(w1)

	context := []byte("test-context")

	prover, err := NewProver(context, nil, nil, w0, w1)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	verifier, err := NewVerifier(context, nil, nil, w0, L)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	X, err := prover.GenerateShare()
	if err != nil {
		t.Fatalf("prover share: %v", err)
	}
	Y, err := verifier.GenerateShare()
	if err != nil {
		t.Fatalf("verifier share: %v", err)
	}

	if err := prover.ProcessPeerShare(Y); err != nil {
		t.Fatalf("prover process: %v", err)
	}
	if err := verifier.ProcessPeerShare(X); err != nil {
		t.Fatalf("verifier process: %v", err)
	}

	proverConfirm, err := prover.Confirmation()
	if err != nil {
		t.Fatalf("prover confirm: %v", err)
	}
	verifierConfirm, err := verifier.Confirmation()
	if err != nil {
		t.Fatalf("verifier confirm: %v", err)
	}

	if err := verifier.VerifyPeerConfirmation(proverConfirm); err != nil {
		t.Fatalf("verifier failed to verify prover confirmation: %v", err)
	}
	if err := prover.VerifyPeerConfirmation(verifierConfirm); err != nil {
		t.Fatalf("prover failed to verify verifier confirmation: %v", err)
	}

	if !bytes.Equal(prover.SharedSecret(), verifier.SharedSecret()) {
		t.Fatal("prover and verifier derived different shared secrets")
	}
}

func TestProverVerifierMismatchOnWrongPIN(t *testing.T) {
	salt := bytes.Repeat([]byte{0x11}, 32)
	w0a, w1a, _ := ComputeW0W1([]byte("12345678"), salt)
	w0b, _, _ := ComputeW0W1([]byte("87654321"), salt)
	La := ComputeL(w1a)

	context := []byte("ctx")
	prover, _ := NewProver(context, nil, nil, w0a, w1a)
	verifier, _ := NewVerifier(context, nil, nil, w0b, La)

	X, _ := prover.GenerateShare()
	Y, _ := verifier.GenerateShare()
	if err := prover.ProcessPeerShare(Y); err != nil {
		t.Fatalf("prover process: %v", err)
	}
	if err := verifier.ProcessPeerShare(X); err != nil {
		t.Fatalf("verifier process: %v", err)
	}

	proverConfirm, _ := prover.Confirmation()
	if err := verifier.VerifyPeerConfirmation(proverConfirm); err == nil {
		t.Fatal("expected confirmation failure on mismatched PIN")
	}
}

func TestValidatePasscode(t *testing.T) {
	if err := ValidatePasscode([]byte("12345678")); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	if err := ValidatePasscode([]byte("1234567")); err == nil {
		t.Fatal("expected error for short PIN")
	}
	if err := ValidatePasscode([]byte("1234567a")); err == nil {
		t.Fatal("expected error for non-digit PIN")
	}
}
