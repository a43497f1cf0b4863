package tvm

import (
	"fmt"
	"strings"

	"ashlang/internal/field"
)

const (
	// DefaultSecurityLevel is the conjectured security in bits.
	DefaultSecurityLevel = 160
	// DefaultLog2FRIExpansionFactor gives an expansion factor of 4.
	DefaultLog2FRIExpansionFactor = 2

	numOutOfDomainRows      = 2
	extensionFieldDegree    = 3
	numRandomizerPolynomial = 1
)

// Parameters are the STARK parameters a proof is produced under.
type Parameters struct {
	SecurityLevel            int `msgpack:"security_level"`
	FRIExpansionFactor       int `msgpack:"fri_expansion_factor"`
	NumTraceRandomizers      int `msgpack:"num_trace_randomizers"`
	NumRandomizerPolynomials int `msgpack:"num_randomizer_polynomials"`
	NumCollinearityChecks    int `msgpack:"num_collinearity_checks"`
	NumCombinationCodewords  int `msgpack:"num_combination_codewords"`
}

// DefaultParameters are the parameters used unless configured otherwise.
func DefaultParameters() Parameters {
	return ParametersFor(DefaultSecurityLevel, DefaultLog2FRIExpansionFactor)
}

// ParametersFor derives the parameter set from a security level and the log2
// of the FRI expansion factor.
func ParametersFor(securityLevel, log2FRI int) Parameters {
	if log2FRI < 1 {
		log2FRI = 1
	}
	checks := securityLevel / log2FRI
	return Parameters{
		SecurityLevel:            securityLevel,
		FRIExpansionFactor:       1 << log2FRI,
		NumTraceRandomizers:      checks + numOutOfDomainRows*extensionFieldDegree,
		NumRandomizerPolynomials: numRandomizerPolynomial,
		NumCollinearityChecks:    checks,
		NumCombinationCodewords:  2 * checks,
	}
}

func (p Parameters) String() string {
	return fmt.Sprintf(
		"Stark { security_level: %d, fri_expansion_factor: %d, num_trace_randomizers: %d, num_randomizer_polynomials: %d, num_collinearity_checks: %d, num_combination_codewords: %d }",
		p.SecurityLevel, p.FRIExpansionFactor, p.NumTraceRandomizers,
		p.NumRandomizerPolynomials, p.NumCollinearityChecks, p.NumCombinationCodewords,
	)
}

// Claim is the public statement a proof attests to.
type Claim struct {
	ProgramDigest Digest          `msgpack:"program_digest"`
	Input         []field.Element `msgpack:"input"`
	Output        []field.Element `msgpack:"output"`
}

func (c Claim) String() string {
	return fmt.Sprintf("Claim { program_digest: %s, input: %s, output: %s }",
		c.ProgramDigest, formatElements(c.Input), formatElements(c.Output))
}

// Proof carries the trace commitment of a run.
type Proof struct {
	Cycles       uint64 `msgpack:"cycles"`
	PaddedHeight uint64 `msgpack:"padded_height"`
	MerkleRoot   Digest `msgpack:"merkle_root"`
}

// Artifacts bundle everything a proving run produces.
type Artifacts struct {
	Parameters Parameters `msgpack:"parameters"`
	Claim      Claim      `msgpack:"claim"`
	Proof      Proof      `msgpack:"proof"`
}

func formatElements(xs []field.Element) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
