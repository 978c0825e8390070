package pca

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/pca/endian"
	"github.com/arloliu/pca/errs"
	"github.com/arloliu/pca/format"
	"github.com/arloliu/pca/matrix"
)

// Artifact name suffixes written by Save and consumed by Load.
const (
	manifestSuffix	= ".pca"
	meanSuffix	= ".mean"
	sigmaSuffix	= ".sigma"
	eigenvalueSuffix	= ".eigval"
	eigenvectorSuffix	= ".eigvec"
	principalSuffix	= ".princomp"
	energySuffix	= ".energy"
	eigenvalueBootSuffix	= ".eigvalboot"
	energyBootSuffix	= ".energyboot"
)

// Manifest layout, little-endian:
//
//	offset 0-3   magic "PCAF"
//	offset 4     format version
//	offset 5     solver type
//	offset 6     flags (bit 0: normalize, bit 1: bootstrap)
//	offset 7     compression type
//	offset 8-15  num variables (uint64)
//	offset 16-23 num retained (uint64)
//	offset 24-31 bootstrap count (uint64)
//	offset 32-39 bootstrap seed (uint64)
const (
	manifestSize    = 40
	manifestVersion = 1

	flagNormalize = 1 << 0
	flagBootstrap = 1 << 1
)

var manifestMagic = [4]byte{'P', 'C', 'A', 'F'}

// Save persists the full analysis state as a set of named artifacts:
// <prefix>.pca (manifest), .mean, .eigval, .eigvec, .princomp, .energy,
// plus .sigma when normalization is enabled and .eigvalboot/.energyboot when
// bootstrapping is enabled. Vectors are stored as n×1 matrices and scalars
// as 1×1 matrices in the matrix artifact format.
//
// Returns:
//   - error: ErrNotSolved before a successful Solve, or ErrFileAccess if an
//     artifact cannot be written
func (p *PCA) Save(prefix string) error {
	if err := p.requireSolved(); err != nil {
		return err
	}

	if err := p.writeManifest(prefix + manifestSuffix); err != nil {
		return err
	}

	type artifact struct {
		suffix string
		m      mat.Matrix
	}

	artifacts := []artifact{
		{meanSuffix, columnMatrix(p.state.means)},
		{eigenvalueSuffix, columnMatrix(p.state.eigenvalues)},
		{eigenvectorSuffix, p.state.eigenvectors},
		{principalSuffix, p.state.principals},
		{energySuffix, mat.NewDense(1, 1, []float64{p.state.energy})},
	}
	if p.doNormalize {
		artifacts = append(artifacts, artifact{sigmaSuffix, columnMatrix(p.state.sigmas)})
	}
	if p.doBootstrap && p.state.bootEigenvalues != nil {
		artifacts = append(artifacts,
			artifact{eigenvalueBootSuffix, p.state.bootEigenvalues},
			artifact{energyBootSuffix, columnMatrix(p.state.bootEnergies)},
		)
	}

	for _, artifact := range artifacts {
		if err := matrix.WriteFile(prefix+artifact.suffix, artifact.m, p.compression); err != nil {
			return err
		}
	}

	return nil
}

// Load restores an engine from the artifacts written by Save. The manifest
// determines which artifacts are required. The restored engine is solved but
// carries no records; new records may be added and a fresh Solve replaces
// the loaded state.
//
// Returns:
//   - error: ErrMissingFile if a required artifact is absent, ErrFileAccess
//     if one is unreadable, an integrity sentinel if one is corrupt, or
//     ErrDimensionMismatch if artifact dimensions disagree with the manifest
func (p *PCA) Load(prefix string) error {
	manifest, err := readManifest(prefix + manifestSuffix)
	if err != nil {
		return err
	}

	n := manifest.numVariables

	means, err := loadVector(prefix+meanSuffix, n)
	if err != nil {
		return err
	}

	var sigmas []float64
	if manifest.normalize {
		if sigmas, err = loadVector(prefix+sigmaSuffix, n); err != nil {
			return err
		}
	}

	eigenvalues, err := loadVector(prefix+eigenvalueSuffix, n)
	if err != nil {
		return err
	}

	eigenvectors, err := loadMatrix(prefix+eigenvectorSuffix, n, n)
	if err != nil {
		return err
	}

	principals, err := matrix.ReadFile(prefix + principalSuffix)
	if err != nil {
		return err
	}
	if _, cols := principals.Dims(); cols != n {
		return fmt.Errorf("artifact %s has %d columns, manifest expects %d: %w",
			prefix+principalSuffix, cols, n, errs.ErrDimensionMismatch)
	}

	energyValues, err := loadVector(prefix+energySuffix, 1)
	if err != nil {
		return err
	}

	state := &analysisState{
		eigenvalues:  eigenvalues,
		eigenvectors: eigenvectors,
		principals:   principals,
		energy:       energyValues[0],
		means:        means,
		sigmas:       sigmas,
	}

	if manifest.bootstrap {
		state.bootEigenvalues, err = loadMatrix(prefix+eigenvalueBootSuffix, manifest.numBootstraps, n)
		if err != nil {
			return err
		}
		state.bootEnergies, err = loadVector(prefix+energyBootSuffix, manifest.numBootstraps)
		if err != nil {
			return err
		}
	}

	p.numVariables = n
	p.numRetained = manifest.numRetained
	p.doNormalize = manifest.normalize
	p.doBootstrap = manifest.bootstrap
	p.numBootstraps = manifest.numBootstraps
	p.bootstrapSeed = manifest.seed
	p.solver = manifest.solver
	p.compression = manifest.compression
	p.data = nil
	p.numRecords = 0
	p.state = state
	p.solved = true

	return nil
}

type manifest struct {
	solver        format.SolverType
	compression   format.CompressionType
	normalize     bool
	bootstrap     bool
	numVariables  int
	numRetained   int
	numBootstraps int
	seed          uint64
}

func (p *PCA) writeManifest(path string) error {
	engine := endian.GetLittleEndianEngine()

	var flags byte
	if p.doNormalize {
		flags |= flagNormalize
	}
	if p.doBootstrap {
		flags |= flagBootstrap
	}

	buf := make([]byte, 0, manifestSize)
	buf = append(buf, manifestMagic[:]...)
	buf = append(buf, manifestVersion, byte(p.solver), flags, byte(p.compression))
	buf = engine.AppendUint64(buf, uint64(p.numVariables))  //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(p.numRetained))   //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(p.numBootstraps)) //nolint:gosec
	buf = engine.AppendUint64(buf, p.bootstrapSeed)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, errs.ErrFileAccess)
	}

	return nil
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read manifest %s: %w", path, errs.ErrMissingFile)
		}

		return nil, fmt.Errorf("read manifest %s: %w", path, errs.ErrFileAccess)
	}

	if len(data) != manifestSize {
		return nil, fmt.Errorf("manifest %s has %d bytes: %w", path, len(data), errs.ErrInvalidHeaderSize)
	}
	if [4]byte(data[0:4]) != manifestMagic {
		return nil, fmt.Errorf("manifest %s: %w", path, errs.ErrInvalidMagicNumber)
	}
	if data[4] != manifestVersion {
		return nil, fmt.Errorf("manifest %s version %d: %w", path, data[4], errs.ErrInvalidVersion)
	}

	m := &manifest{
		solver:      format.SolverType(data[5]),
		compression: format.CompressionType(data[7]),
		normalize:   data[6]&flagNormalize != 0,
		bootstrap:   data[6]&flagBootstrap != 0,
	}
	if !m.solver.Valid() {
		return nil, fmt.Errorf("manifest %s solver %d: %w", path, data[5], errs.ErrUnsupportedSolver)
	}
	if !m.compression.Valid() {
		return nil, fmt.Errorf("manifest %s compression %d: %w", path, data[7], errs.ErrInvalidConfiguration)
	}

	engine := endian.GetLittleEndianEngine()
	m.numVariables = int(engine.Uint64(data[8:16]))   //nolint:gosec
	m.numRetained = int(engine.Uint64(data[16:24]))   //nolint:gosec
	m.numBootstraps = int(engine.Uint64(data[24:32])) //nolint:gosec
	m.seed = engine.Uint64(data[32:40])

	if m.numVariables < MinNumVariables {
		return nil, fmt.Errorf("manifest %s has %d variables: %w",
			path, m.numVariables, errs.ErrInvalidConfiguration)
	}
	if m.numRetained < 1 || m.numRetained > m.numVariables {
		return nil, fmt.Errorf("manifest %s retains %d of %d eigenvectors: %w",
			path, m.numRetained, m.numVariables, errs.ErrInvalidConfiguration)
	}
	if m.bootstrap && m.numBootstraps < MinNumBootstraps {
		return nil, fmt.Errorf("manifest %s has %d bootstrap repetitions: %w",
			path, m.numBootstraps, errs.ErrInvalidConfiguration)
	}

	return m, nil
}

// columnMatrix views a vector as an n×1 matrix for artifact encoding.
func columnMatrix(values []float64) *mat.Dense {
	return mat.NewDense(len(values), 1, values)
}

// loadVector reads an artifact expected to hold a wantLen×1 matrix.
func loadVector(path string, wantLen int) ([]float64, error) {
	m, err := loadMatrix(path, wantLen, 1)
	if err != nil {
		return nil, err
	}

	return mat.Col(nil, 0, m), nil
}

// loadMatrix reads an artifact and validates its dimensions.
func loadMatrix(path string, wantRows, wantCols int) (*mat.Dense, error) {
	m, err := matrix.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows, cols := m.Dims()
	if rows != wantRows || cols != wantCols {
		return nil, fmt.Errorf("artifact %s is %dx%d, manifest expects %dx%d: %w",
			path, rows, cols, wantRows, wantCols, errs.ErrDimensionMismatch)
	}

	return m, nil
}
