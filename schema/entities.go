package schema

// declaredEntities полный перечень сущностей реестра промышленных предприятий.
// Единственный источник истины о схеме: из него строятся таблицы БД,
// метаданные колонок для API и валидация обязательных полей.
func declaredEntities() []*Entity {
	orgRef := Field{Name: "organization_id", Type: FieldInteger, Required: true}
	year := Field{Name: "year", Type: FieldInteger, Required: true}

	return []*Entity{
		{
			Kind:        "organizations",
			Table:       "organizations",
			DisplayName: "Организации",
			Fields: []Field{
				{Name: "inn", Type: FieldText, Required: true, Unique: true, MaxLength: 12},
				{Name: "name", Type: FieldText, Required: true, MaxLength: 255},
				{Name: "full_name", Type: FieldText, MaxLength: 500},
				{Name: "spark_status", Type: FieldText, MaxLength: 100},
				{Name: "internal_status", Type: FieldText, MaxLength: 100},
				{Name: "final_status", Type: FieldText, MaxLength: 100},
				{Name: "registry_addition_date", Type: FieldDate, MaxLength: 50},
				{Name: "registration_date", Type: FieldDate, MaxLength: 50},
				{Name: "manager_name", Type: FieldText, MaxLength: 255},
				{Name: "website", Type: FieldText, MaxLength: 255},
				{Name: "email", Type: FieldText, MaxLength: 255},
				{Name: "general_info", Type: FieldText},
				{Name: "head_organization", Type: FieldText, MaxLength: 255},
				{Name: "head_organization_inn", Type: FieldText, MaxLength: 12},
				{Name: "head_organization_relation_type", Type: FieldText, MaxLength: 100},
			},
		},
		{
			Kind:        "financial-indicators",
			Table:       "financial_indicators",
			DisplayName: "Финансовые показатели",
			Fields: []Field{
				orgRef,
				year,
				{Name: "revenue", Type: FieldNumeric},
				{Name: "net_profit", Type: FieldNumeric},
				{Name: "employee_count", Type: FieldInteger},
				{Name: "employee_count_moscow", Type: FieldInteger},
				{Name: "payroll_all_employees", Type: FieldNumeric},
				{Name: "payroll_moscow_employees", Type: FieldNumeric},
				{Name: "avg_salary_all_employees", Type: FieldNumeric},
				{Name: "avg_salary_moscow_employees", Type: FieldNumeric},
			},
		},
		{
			Kind:        "taxes",
			Table:       "taxes",
			DisplayName: "Налоги",
			Fields: []Field{
				orgRef,
				year,
				{Name: "moscow_taxes", Type: FieldNumeric},
				{Name: "profit_tax", Type: FieldNumeric},
				{Name: "property_tax", Type: FieldNumeric},
				{Name: "land_tax", Type: FieldNumeric},
				{Name: "personal_income_tax", Type: FieldNumeric},
				{Name: "transport_tax", Type: FieldNumeric},
				{Name: "other_taxes", Type: FieldNumeric},
				{Name: "excise_taxes", Type: FieldNumeric},
			},
		},
		{
			Kind:        "addresses",
			Table:       "addresses",
			DisplayName: "Адреса",
			Fields: []Field{
				orgRef,
				{Name: "address_type", Type: FieldText, MaxLength: 50},
				{Name: "full_address", Type: FieldText, MaxLength: 500},
				{Name: "latitude", Type: FieldNumeric},
				{Name: "longitude", Type: FieldNumeric},
				{Name: "district", Type: FieldText, MaxLength: 100},
				{Name: "area", Type: FieldText, MaxLength: 100},
			},
		},
		{
			Kind:        "okveds",
			Table:       "okveds",
			DisplayName: "Коды ОКВЭД",
			Fields: []Field{
				orgRef,
				{Name: "okved_type", Type: FieldText, MaxLength: 100},
				{Name: "code", Type: FieldText, MaxLength: 20},
				{Name: "description", Type: FieldText},
			},
		},
		{
			Kind:        "contacts",
			Table:       "contacts",
			DisplayName: "Контакты",
			Fields: []Field{
				orgRef,
				{Name: "contact_type", Type: FieldText, MaxLength: 100},
				{Name: "name", Type: FieldText, MaxLength: 255},
				{Name: "phone", Type: FieldText, MaxLength: 50},
				{Name: "email", Type: FieldText, MaxLength: 255},
				{Name: "management_email", Type: FieldText, MaxLength: 255},
			},
		},
		{
			Kind:        "industries",
			Table:       "industries",
			DisplayName: "Отрасли",
			Fields: []Field{
				orgRef,
				{Name: "main_industry", Type: FieldText, MaxLength: 255},
				{Name: "main_subindustry", Type: FieldText, MaxLength: 255},
				{Name: "additional_industry", Type: FieldText, MaxLength: 255},
				{Name: "additional_subindustry", Type: FieldText, MaxLength: 255},
				{Name: "industry_presentations", Type: FieldText},
				{Name: "industry_by_spark", Type: FieldText, MaxLength: 255},
			},
		},
		{
			Kind:        "company-sizes",
			Table:       "company_sizes",
			DisplayName: "Размеры предприятий",
			Fields: []Field{
				orgRef,
				year,
				{Name: "size_final", Type: FieldText, MaxLength: 100},
				{Name: "size_by_employees", Type: FieldText, MaxLength: 100},
				{Name: "size_by_revenue", Type: FieldText, MaxLength: 100},
			},
		},
		{
			Kind:        "support",
			Table:       "supports",
			DisplayName: "Меры поддержки",
			Fields: []Field{
				orgRef,
				{Name: "support_data", Type: FieldText},
				{Name: "special_status", Type: FieldText, MaxLength: 255},
				{Name: "platform_final", Type: FieldText, MaxLength: 100},
				{Name: "moscow_support_received", Type: FieldBoolean},
				{Name: "system_forming_enterprise", Type: FieldBoolean},
				{Name: "sme_status", Type: FieldText, MaxLength: 100},
			},
		},
		{
			Kind:        "investment-export",
			Table:       "investment_exports",
			DisplayName: "Инвестиции и экспорт",
			Fields: []Field{
				orgRef,
				year,
				{Name: "moscow_investments", Type: FieldNumeric},
				{Name: "export_volume", Type: FieldNumeric},
			},
		},
		{
			Kind:        "property-land",
			Table:       "property_lands",
			DisplayName: "Имущественно-земельный комплекс",
			Fields: []Field{
				orgRef,
				{Name: "land_cadastral_number", Type: FieldText, MaxLength: 50},
				{Name: "land_area", Type: FieldNumeric},
				{Name: "land_use_type", Type: FieldText, MaxLength: 255},
				{Name: "land_ownership_type", Type: FieldText, MaxLength: 100},
				{Name: "land_owner", Type: FieldText, MaxLength: 255},
				{Name: "building_cadastral_number", Type: FieldText, MaxLength: 50},
				{Name: "building_area", Type: FieldNumeric},
				{Name: "building_use_type", Type: FieldText, MaxLength: 255},
				{Name: "building_type_purpose", Type: FieldText, MaxLength: 255},
				{Name: "building_ownership_type", Type: FieldText, MaxLength: 100},
				{Name: "building_owner", Type: FieldText, MaxLength: 255},
				{Name: "production_area", Type: FieldNumeric},
			},
		},
		{
			Kind:        "production",
			Table:       "productions",
			DisplayName: "Производимая продукция",
			Fields: []Field{
				orgRef,
				year,
				{Name: "manufactured_products", Type: FieldText},
				{Name: "standardized_products", Type: FieldText},
				{Name: "product_names", Type: FieldText},
				{Name: "okpd2_products", Type: FieldText},
				{Name: "product_types_segments", Type: FieldText},
				{Name: "product_catalog", Type: FieldText},
				{Name: "government_order", Type: FieldBoolean},
				{Name: "production_capacity_utilization", Type: FieldText, MaxLength: 100},
				{Name: "export_supplies", Type: FieldBoolean},
				{Name: "export_volume_previous_year", Type: FieldNumeric},
				{Name: "export_countries", Type: FieldText},
				{Name: "tn_ved_code", Type: FieldText, MaxLength: 50},
			},
		},
	}
}
