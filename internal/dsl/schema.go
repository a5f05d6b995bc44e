// ABOUTME: Static schema registry for the healthcare data sources
// ABOUTME: Gives the DSL prompt tables, fields, and relationships per index
package dsl

// SourceSchema describes a data source's queryable shape
type SourceSchema struct {
	Tables        []string            `json:"tables"`
	Fields        map[string][]string `json:"fields"`
	Relationships []string            `json:"relationships"`
}

var sourceSchemas = map[string]SourceSchema{
	"healthcare_claims_index": {
		Tables: []string{"claims", "payments", "adjustments"},
		Fields: map[string][]string{
			"claims":      {"claim_id", "patient_id", "provider_id", "procedure_code", "amount", "status", "date"},
			"payments":    {"payment_id", "claim_id", "amount", "payment_date", "method"},
			"adjustments": {"adjustment_id", "claim_id", "amount", "reason", "date"},
		},
		Relationships: []string{
			"claims.claim_id = payments.claim_id",
			"claims.claim_id = adjustments.claim_id",
		},
	},
	"healthcare_providers_index": {
		Tables: []string{"providers", "specialties", "credentials"},
		Fields: map[string][]string{
			"providers":   {"provider_id", "name", "npi", "specialty_id", "active"},
			"specialties": {"specialty_id", "name", "description"},
			"credentials": {"credential_id", "provider_id", "type", "expiry_date"},
		},
		Relationships: []string{
			"providers.specialty_id = specialties.specialty_id",
			"providers.provider_id = credentials.provider_id",
		},
	},
	"healthcare_members_index": {
		Tables: []string{"members", "enrollments", "benefits"},
		Fields: map[string][]string{
			"members":     {"member_id", "first_name", "last_name", "dob", "active"},
			"enrollments": {"enrollment_id", "member_id", "plan_id", "start_date", "end_date"},
			"benefits":    {"benefit_id", "plan_id", "benefit_type", "coverage_level"},
		},
		Relationships: []string{
			"members.member_id = enrollments.member_id",
			"enrollments.plan_id = benefits.plan_id",
		},
	},
	"healthcare_procedures_index": {
		Tables: []string{"procedures", "codes", "pricing"},
		Fields: map[string][]string{
			"procedures": {"procedure_id", "code", "description", "category"},
			"codes":      {"code_id", "code", "type", "description"},
			"pricing":    {"pricing_id", "procedure_id", "amount", "effective_date"},
		},
		Relationships: []string{
			"procedures.code = codes.code",
			"procedures.procedure_id = pricing.procedure_id",
		},
	},
}

// SchemaFor returns the schema registered for an index name, or a minimal
// placeholder so generation can still produce a well-formed document
func SchemaFor(indexName string) SourceSchema {
	if schema, ok := sourceSchemas[indexName]; ok {
		return schema
	}
	return SourceSchema{
		Tables:        []string{"unknown_table"},
		Fields:        map[string][]string{"unknown_table": {"id", "name"}},
		Relationships: []string{},
	}
}
