package configspace

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/YuminosukeSato/paramgo/pkg/errors"
)

func mustAdd(t *testing.T, cs *ConfigurationSpace, hp Hyperparameter, err error) Hyperparameter {
	t.Helper()
	if err != nil {
		t.Fatalf("declare hyperparameter: %v", err)
	}
	added, err := cs.AddHyperparameter(hp)
	if err != nil {
		t.Fatalf("AddHyperparameter(%s) error = %v", hp.Name(), err)
	}
	return added
}

func TestHyperparameterDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"float lower >= upper", func() error { _, err := NewUniformFloat("a", 1, 1, 1, false); return err }},
		{"float default outside", func() error { _, err := NewUniformFloat("a", 0, 1, 2, false); return err }},
		{"float log with zero lower", func() error { _, err := NewUniformFloat("a", 0, 1, 0.5, true); return err }},
		{"integer default outside", func() error { _, err := NewUniformInteger("a", 1, 10, 11, false); return err }},
		{"empty choices", func() error { _, err := NewCategorical("a", nil, ""); return err }},
		{"duplicate choice", func() error { _, err := NewCategorical("a", []string{"x", "x"}, ""); return err }},
		{"default not a choice", func() error { _, err := NewCategorical("a", []string{"x"}, "y"); return err }},
		{"non scalar constant", func() error { _, err := NewConstant("a", []int{1}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUniformFloat(t *testing.T) {
	hp, err := NewUniformFloat("C", 0.03125, 32768, 1.0, true)
	if err != nil {
		t.Fatalf("NewUniformFloat() error = %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	below := 0
	for i := 0; i < 1000; i++ {
		v := hp.Sample(rng).(float64)
		if v < hp.Lower || v > hp.Upper {
			t.Fatalf("Sample() = %v outside [%v, %v]", v, hp.Lower, hp.Upper)
		}
		if v < 1 {
			below++
		}
	}
	// log(1) splits the log range at 5/20 of its width
	if below < 150 || below > 350 {
		t.Errorf("log sampling put %d/1000 samples below 1, want about 250", below)
	}

	tests := []struct {
		value interface{}
		want  bool
	}{
		{1.0, true},
		{"100", true},
		{32768, true},
		{"0.01", false},
		{"abc", false},
		{true, false},
	}
	for _, tt := range tests {
		if got := hp.IsLegal(tt.value); got != tt.want {
			t.Errorf("IsLegal(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if !strings.Contains(hp.String(), "on log-scale") {
		t.Errorf("String() = %q, want log-scale marker", hp.String())
	}
}

func TestUniformInteger(t *testing.T) {
	hp, err := NewUniformInteger("n", 1, 5, 3, false)
	if err != nil {
		t.Fatalf("NewUniformInteger() error = %v", err)
	}
	rng := rand.New(rand.NewSource(2))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		v := hp.Sample(rng).(int)
		if v < 1 || v > 5 {
			t.Fatalf("Sample() = %d outside [1, 5]", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("sampled %d distinct values, want 5", len(seen))
	}
	if hp.IsLegal(2.5) || !hp.IsLegal("4") {
		t.Error("IsLegal() must accept integral values only")
	}
}

func TestCategoricalAndConstant(t *testing.T) {
	loss, err := NewCategorical("loss", []string{"epsilon_insensitive", "squared_epsilon_insensitive"}, "")
	if err != nil {
		t.Fatalf("NewCategorical() error = %v", err)
	}
	if loss.DefaultValue() != "epsilon_insensitive" {
		t.Errorf("DefaultValue() = %v, want first choice", loss.DefaultValue())
	}
	if loss.IsLegal("hinge") {
		t.Error("IsLegal(hinge) = true")
	}

	dual, err := NewConstant("dual", "False")
	if err != nil {
		t.Fatalf("NewConstant() error = %v", err)
	}
	if dual.Sample(nil) != "False" || !dual.IsLegal("False") || dual.IsLegal("True") {
		t.Error("string constant must only accept its own value")
	}
	// YAML は引用符なしの False を bool として読む
	if !dual.IsLegal(false) || dual.IsLegal(true) {
		t.Error("\"False\" constant must accept the bool false only")
	}

	scaling, err := NewConstant("intercept_scaling", 1)
	if err != nil {
		t.Fatalf("NewConstant() error = %v", err)
	}
	for _, v := range []interface{}{1, 1.0, int64(1), "1"} {
		if !scaling.IsLegal(v) {
			t.Errorf("IsLegal(%#v) = false, want true", v)
		}
	}

	fixed, err := NewUnParametrized("penalty", "l2")
	if err != nil {
		t.Fatalf("NewUnParametrized() error = %v", err)
	}
	if fixed.Name() != "penalty" || fixed.DefaultValue() != "l2" {
		t.Errorf("unexpected UnParametrized %v", fixed)
	}
}

func newConditionalSpace(t *testing.T) *ConfigurationSpace {
	t.Helper()
	cs := NewConfigurationSpace()
	kernel, err := NewCategorical("kernel", []string{"linear", "rbf"}, "rbf")
	parent := mustAdd(t, cs, kernel, err)
	gamma, err := NewUniformFloat("gamma", 1e-4, 8, 0.1, true)
	child := mustAdd(t, cs, gamma, err)
	c, err := NewUniformFloat("C", 0.03125, 32768, 1, true)
	mustAdd(t, cs, c, err)

	cond, err := NewEqualsCondition(child, parent, "rbf")
	if err != nil {
		t.Fatalf("NewEqualsCondition() error = %v", err)
	}
	if err := cs.AddCondition(cond); err != nil {
		t.Fatalf("AddCondition() error = %v", err)
	}
	return cs
}

func TestConfigurationSpace_AddErrors(t *testing.T) {
	cs := newConditionalSpace(t)

	dup, _ := NewConstant("C", 1)
	if _, err := cs.AddHyperparameter(dup); err == nil {
		t.Error("AddHyperparameter() accepted a duplicate name")
	}

	other, _ := NewConstant("unknown", 1)
	kernel, _ := cs.Get("kernel")
	cond, err := NewEqualsCondition(other, kernel, "linear")
	if err != nil {
		t.Fatalf("NewEqualsCondition() error = %v", err)
	}
	if err := cs.AddCondition(cond); err == nil {
		t.Error("AddCondition() accepted an unknown child")
	}

	if _, err := NewEqualsCondition(other, kernel, "poly"); err == nil {
		t.Error("NewEqualsCondition() accepted an illegal parent value")
	}

	gamma, _ := cs.Get("gamma")
	if err := cs.AddCondition(&EqualsCondition{Child: "kernel", Parent: gamma.Name(), Value: 1.0}); err == nil {
		t.Error("AddCondition() accepted a cycle")
	}
}

func TestConfigurationSpace_NamesAndDefaults(t *testing.T) {
	cs := newConditionalSpace(t)

	want := []string{"kernel", "gamma", "C"}
	got := cs.Names()
	if len(got) != len(want) || cs.Len() != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	def := cs.DefaultConfiguration()
	if def["kernel"] != "rbf" || def["gamma"] != 0.1 || def["C"] != 1.0 {
		t.Errorf("DefaultConfiguration() = %v", def)
	}
	if err := cs.Validate(def); err != nil {
		t.Errorf("Validate(default) error = %v", err)
	}

	if !strings.Contains(cs.String(), "gamma | kernel == rbf") {
		t.Errorf("String() = %q, missing condition", cs.String())
	}
}

func TestConfigurationSpace_SampleRespectsConditions(t *testing.T) {
	cs := newConditionalSpace(t)
	rng := rand.New(rand.NewSource(3))

	var linear, rbf int
	for i := 0; i < 200; i++ {
		cfg := cs.SampleConfiguration(rng)
		if err := cs.Validate(cfg); err != nil {
			t.Fatalf("Validate(sample %d) error = %v", i, err)
		}
		_, hasGamma := cfg["gamma"]
		switch cfg["kernel"] {
		case "linear":
			linear++
			if hasGamma {
				t.Fatalf("gamma sampled although kernel=linear: %v", cfg)
			}
		case "rbf":
			rbf++
			if !hasGamma {
				t.Fatalf("gamma missing although kernel=rbf: %v", cfg)
			}
		}
	}
	if linear == 0 || rbf == 0 {
		t.Errorf("kernel choices not both sampled: linear=%d rbf=%d", linear, rbf)
	}
}

func TestConfigurationSpace_Validate(t *testing.T) {
	cs := newConditionalSpace(t)

	tests := []struct {
		name string
		cfg  Configuration
	}{
		{"unknown name", Configuration{"kernel": "rbf", "gamma": 0.1, "C": 1.0, "degree": 3}},
		{"missing active value", Configuration{"kernel": "rbf", "C": 1.0}},
		{"inactive value set", Configuration{"kernel": "linear", "gamma": 0.1, "C": 1.0}},
		{"illegal value", Configuration{"kernel": "linear", "C": 1e6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cs.Validate(tt.cfg); err == nil {
				t.Errorf("Validate(%v) = nil, want error", tt.cfg)
			}
		})
	}

	if err := cs.Validate(Configuration{"kernel": "linear", "C": "2.5"}); err != nil {
		t.Errorf("Validate() rejected numeric string: %v", err)
	}
}

func TestConfiguration_Accessors(t *testing.T) {
	cfg := Configuration{"C": "2.5", "tol": 1e-4, "seed": "7", "n": 3.0, "dual": false}

	if v, err := cfg.Float64("C"); err != nil || v != 2.5 {
		t.Errorf("Float64(C) = %v, %v", v, err)
	}
	if v, err := cfg.Int64("seed"); err != nil || v != 7 {
		t.Errorf("Int64(seed) = %v, %v", v, err)
	}
	if v, err := cfg.Int64("n"); err != nil || v != 3 {
		t.Errorf("Int64(n) = %v, %v", v, err)
	}
	if v, err := cfg.String("dual"); err != nil || v != "false" {
		t.Errorf("String(dual) = %q, %v", v, err)
	}
	if _, err := cfg.Float64("missing"); err == nil {
		t.Error("Float64(missing) should fail")
	}
	if _, err := cfg.Float64("dual"); err == nil {
		t.Error("Float64(dual) should fail for a bool")
	}
}

func TestConfiguration_YAML(t *testing.T) {
	cfg := Configuration{
		"loss":              "squared_epsilon_insensitive",
		"C":                 2.5,
		"dual":              "False",
		"intercept_scaling": 1,
	}

	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	out := buf.String()
	if strings.Index(out, "C:") > strings.Index(out, "dual:") ||
		strings.Index(out, "dual:") > strings.Index(out, "intercept_scaling:") ||
		strings.Index(out, "intercept_scaling:") > strings.Index(out, "loss:") {
		t.Errorf("keys not written in sorted order:\n%s", out)
	}

	loaded, err := LoadConfiguration(strings.NewReader(out))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	// quoted "False" stays a string
	if loaded["dual"] != "False" {
		t.Errorf("dual = %#v, want \"False\"", loaded["dual"])
	}
	if loaded["C"] != 2.5 || loaded["intercept_scaling"] != 1 || loaded["loss"] != "squared_epsilon_insensitive" {
		t.Errorf("LoadConfiguration() = %v", loaded)
	}

	if _, err := LoadConfiguration(strings.NewReader("C: [1, 2")); err == nil {
		t.Error("LoadConfiguration() accepted malformed YAML")
	}
}
