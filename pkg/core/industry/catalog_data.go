package industry

// builtinEntries is the compiled-in multiple table. Values are static,
// expert-authored constants; they are not calibrated against sale data.
func builtinEntries() []MultipleData {
	return []MultipleData{
		{
			IndustryKey: "general_business", IndustryName: "General Business",
			SDE: band(2.0, 2.5, 3.0), EBITDA: band(3.0, 3.5, 4.5), Revenue: band(0.3, 0.5, 0.7),
			TypicalOwnerHours: 45, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "accounting_firm", IndustryName: "Accounting & Bookkeeping", NAICSCode: "541211",
			SDE: band(2.0, 2.8, 3.5), EBITDA: band(3.5, 4.5, 5.5), Revenue: band(0.9, 1.1, 1.4),
			TypicalOwnerHours: 45, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "auto_repair", IndustryName: "Auto Repair & Service", NAICSCode: "811111",
			SDE: band(2.0, 2.5, 3.2), EBITDA: band(3.0, 3.75, 4.75), Revenue: band(0.3, 0.45, 0.6),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "bakery", IndustryName: "Bakery", NAICSCode: "311811",
			SDE: band(1.6, 2.2, 2.8), EBITDA: band(2.5, 3.25, 4.0), Revenue: band(0.25, 0.4, 0.55),
			TypicalOwnerHours: 60, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "bar_nightclub", IndustryName: "Bar & Nightclub", NAICSCode: "722410",
			SDE: band(1.5, 2.0, 2.5), EBITDA: band(2.5, 3.0, 4.0), Revenue: band(0.25, 0.35, 0.5),
			TypicalOwnerHours: 55, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "car_wash", IndustryName: "Car Wash", NAICSCode: "811192",
			SDE: band(2.5, 3.2, 4.0), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.8, 1.2, 1.8),
			TypicalOwnerHours: 40, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "childcare", IndustryName: "Childcare & Preschool", NAICSCode: "624410",
			SDE: band(2.0, 2.6, 3.3), EBITDA: band(3.5, 4.5, 5.5), Revenue: band(0.4, 0.6, 0.85),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "cleaning_services", IndustryName: "Cleaning & Janitorial", NAICSCode: "561720",
			SDE: band(1.8, 2.4, 3.0), EBITDA: band(3.0, 3.75, 4.75), Revenue: band(0.3, 0.5, 0.75),
			TypicalOwnerHours: 40, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "coffee_shop", IndustryName: "Coffee Shop & Cafe", NAICSCode: "722515",
			SDE: band(1.5, 2.1, 2.8), EBITDA: band(2.5, 3.25, 4.0), Revenue: band(0.3, 0.45, 0.6),
			TypicalOwnerHours: 55, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "construction", IndustryName: "Construction & Contracting", NAICSCode: "236220",
			SDE: band(2.0, 2.5, 3.2), EBITDA: band(3.0, 3.75, 4.75), Revenue: band(0.2, 0.3, 0.45),
			TypicalOwnerHours: 55, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "consulting", IndustryName: "Consulting Services", NAICSCode: "541611",
			SDE: band(1.8, 2.4, 3.2), EBITDA: band(3.0, 4.0, 5.5), Revenue: band(0.4, 0.6, 0.9),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "convenience_store", IndustryName: "Convenience Store", NAICSCode: "445131",
			SDE: band(1.8, 2.3, 3.0), EBITDA: band(3.0, 3.5, 4.5), Revenue: band(0.15, 0.25, 0.35),
			TypicalOwnerHours: 60, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "dental_practice", IndustryName: "Dental Practice", NAICSCode: "621210",
			SDE: band(2.5, 3.2, 4.0), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.6, 0.8, 1.0),
			TypicalOwnerHours: 40, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "digital_agency", IndustryName: "Digital Marketing Agency", NAICSCode: "541810",
			SDE: band(2.0, 2.6, 3.5), EBITDA: band(3.5, 4.5, 6.0), Revenue: band(0.5, 0.75, 1.1),
			TypicalOwnerHours: 45, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "distribution_wholesale", IndustryName: "Wholesale & Distribution", NAICSCode: "423990",
			SDE: band(2.3, 2.9, 3.6), EBITDA: band(3.5, 4.5, 5.5), Revenue: band(0.2, 0.3, 0.45),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "ecommerce", IndustryName: "E-Commerce", NAICSCode: "454110",
			SDE: band(2.5, 3.2, 4.2), EBITDA: band(3.5, 4.5, 6.0), Revenue: band(0.5, 0.9, 1.5),
			TypicalOwnerHours: 35, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "education_tutoring", IndustryName: "Education & Tutoring", NAICSCode: "611691",
			SDE: band(1.8, 2.4, 3.0), EBITDA: band(3.0, 3.75, 4.75), Revenue: band(0.4, 0.6, 0.85),
			TypicalOwnerHours: 45, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "electrical", IndustryName: "Electrical Contractor", NAICSCode: "238210",
			SDE: band(2.2, 2.7, 3.4), EBITDA: band(3.5, 4.25, 5.5), Revenue: band(0.3, 0.45, 0.7),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "fitness_center", IndustryName: "Fitness Center & Gym", NAICSCode: "713940",
			SDE: band(2.0, 2.5, 3.2), EBITDA: band(3.0, 3.75, 4.75), Revenue: band(0.5, 0.75, 1.0),
			TypicalOwnerHours: 45, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "food_truck", IndustryName: "Food Truck", NAICSCode: "722330",
			SDE: band(1.2, 1.7, 2.3), EBITDA: band(2.0, 2.75, 3.5), Revenue: band(0.2, 0.3, 0.45),
			TypicalOwnerHours: 60, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "franchise_food", IndustryName: "Quick Service Franchise", NAICSCode: "722513",
			SDE: band(1.8, 2.4, 3.0), EBITDA: band(3.0, 3.75, 4.5), Revenue: band(0.3, 0.45, 0.6),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "funeral_home", IndustryName: "Funeral Home", NAICSCode: "812210",
			SDE: band(3.0, 3.8, 4.8), EBITDA: band(4.5, 5.5, 7.0), Revenue: band(1.0, 1.4, 1.9),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "gas_station", IndustryName: "Gas Station", NAICSCode: "447110",
			SDE: band(2.5, 3.2, 4.0), EBITDA: band(3.5, 4.5, 5.5), Revenue: band(0.15, 0.25, 0.4),
			TypicalOwnerHours: 55, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "home_health", IndustryName: "Home Health & Senior Care", NAICSCode: "621610",
			SDE: band(2.5, 3.0, 4.0), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.4, 0.6, 0.9),
			TypicalOwnerHours: 45, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "hotel_motel", IndustryName: "Hotel & Motel", NAICSCode: "721110",
			SDE: band(3.0, 4.0, 5.5), EBITDA: band(5.0, 6.5, 8.5), Revenue: band(1.0, 1.8, 2.8),
			TypicalOwnerHours: 55, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "hvac", IndustryName: "HVAC Services", NAICSCode: "238220",
			SDE: band(2.5, 3.0, 4.0), EBITDA: band(3.5, 4.5, 6.0), Revenue: band(0.4, 0.6, 0.9),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "insurance_agency", IndustryName: "Insurance Agency", NAICSCode: "524210",
			SDE: band(2.5, 3.2, 4.0), EBITDA: band(4.0, 5.0, 7.0), Revenue: band(1.2, 1.6, 2.2),
			TypicalOwnerHours: 40, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "it_services", IndustryName: "IT Services & MSP", NAICSCode: "541512",
			SDE: band(2.5, 3.0, 4.0), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.5, 0.8, 1.2),
			TypicalOwnerHours: 45, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "landscaping", IndustryName: "Landscaping & Lawn Care", NAICSCode: "561730",
			SDE: band(1.8, 2.3, 3.0), EBITDA: band(3.0, 3.5, 4.5), Revenue: band(0.3, 0.45, 0.65),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "laundromat", IndustryName: "Laundromat & Dry Cleaning", NAICSCode: "812310",
			SDE: band(3.0, 3.8, 4.8), EBITDA: band(4.0, 5.0, 6.0), Revenue: band(1.0, 1.4, 1.9),
			TypicalOwnerHours: 25, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "liquor_store", IndustryName: "Liquor Store", NAICSCode: "445320",
			SDE: band(2.0, 2.6, 3.2), EBITDA: band(3.0, 3.75, 4.5), Revenue: band(0.25, 0.35, 0.5),
			TypicalOwnerHours: 55, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "manufacturing", IndustryName: "Manufacturing", NAICSCode: "332710",
			SDE: band(2.5, 3.2, 4.2), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.4, 0.6, 0.9),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "medical_practice", IndustryName: "Medical Practice", NAICSCode: "621111",
			SDE: band(2.0, 2.6, 3.3), EBITDA: band(3.5, 4.5, 6.0), Revenue: band(0.4, 0.6, 0.8),
			TypicalOwnerHours: 45, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "pest_control", IndustryName: "Pest Control", NAICSCode: "561710",
			SDE: band(2.5, 3.2, 4.2), EBITDA: band(4.0, 5.0, 6.5), Revenue: band(0.6, 0.9, 1.3),
			TypicalOwnerHours: 45, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "pharmacy", IndustryName: "Pharmacy", NAICSCode: "446110",
			SDE: band(2.0, 2.6, 3.2), EBITDA: band(3.5, 4.25, 5.0), Revenue: band(0.2, 0.3, 0.45),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "plumbing", IndustryName: "Plumbing Services", NAICSCode: "238220",
			SDE: band(2.3, 2.8, 3.5), EBITDA: band(3.5, 4.25, 5.5), Revenue: band(0.35, 0.5, 0.8),
			TypicalOwnerHours: 50, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "printing_signs", IndustryName: "Printing & Sign Shop", NAICSCode: "323111",
			SDE: band(1.8, 2.3, 3.0), EBITDA: band(3.0, 3.5, 4.5), Revenue: band(0.3, 0.45, 0.6),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "property_management", IndustryName: "Property Management", NAICSCode: "531311",
			SDE: band(2.5, 3.0, 3.8), EBITDA: band(4.0, 5.0, 6.0), Revenue: band(0.8, 1.1, 1.5),
			TypicalOwnerHours: 40, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "real_estate_brokerage", IndustryName: "Real Estate Brokerage", NAICSCode: "531210",
			SDE: band(1.5, 2.0, 2.8), EBITDA: band(2.5, 3.25, 4.25), Revenue: band(0.2, 0.35, 0.5),
			TypicalOwnerHours: 45, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "restaurant", IndustryName: "Restaurant", NAICSCode: "722511",
			SDE: band(1.5, 2.0, 2.8), EBITDA: band(2.5, 3.25, 4.25), Revenue: band(0.2, 0.35, 0.5),
			TypicalOwnerHours: 60, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "retail_general", IndustryName: "Retail Store", NAICSCode: "452319",
			SDE: band(1.5, 2.0, 2.7), EBITDA: band(2.5, 3.25, 4.0), Revenue: band(0.2, 0.3, 0.45),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "roofing", IndustryName: "Roofing Contractor", NAICSCode: "238160",
			SDE: band(2.0, 2.5, 3.2), EBITDA: band(3.0, 3.75, 5.0), Revenue: band(0.3, 0.4, 0.6),
			TypicalOwnerHours: 50, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "saas", IndustryName: "Software / SaaS", NAICSCode: "511210",
			SDE: band(3.0, 4.0, 6.0), EBITDA: band(4.0, 6.0, 10.0), Revenue: band(2.0, 3.5, 6.0),
			TypicalOwnerHours: 40, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "salon_spa", IndustryName: "Salon & Spa", NAICSCode: "812112",
			SDE: band(1.5, 2.0, 2.6), EBITDA: band(2.5, 3.0, 4.0), Revenue: band(0.3, 0.45, 0.6),
			TypicalOwnerHours: 45, Volatility: VolatilityMedium,
		},
		{
			IndustryKey: "security_alarm", IndustryName: "Security & Alarm Monitoring", NAICSCode: "561621",
			SDE: band(2.8, 3.5, 4.5), EBITDA: band(4.5, 6.0, 8.0), Revenue: band(1.0, 1.5, 2.2),
			TypicalOwnerHours: 45, Volatility: VolatilityLow,
		},
		{
			IndustryKey: "staffing_agency", IndustryName: "Staffing Agency", NAICSCode: "561311",
			SDE: band(2.0, 2.6, 3.4), EBITDA: band(3.5, 4.5, 6.0), Revenue: band(0.2, 0.35, 0.5),
			TypicalOwnerHours: 45, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "trucking_logistics", IndustryName: "Trucking & Logistics", NAICSCode: "484121",
			SDE: band(2.0, 2.5, 3.2), EBITDA: band(3.0, 3.5, 4.5), Revenue: band(0.2, 0.35, 0.5),
			TypicalOwnerHours: 55, Volatility: VolatilityHigh,
		},
		{
			IndustryKey: "veterinary", IndustryName: "Veterinary Practice", NAICSCode: "541940",
			SDE: band(3.0, 3.8, 5.0), EBITDA: band(5.0, 6.5, 9.0), Revenue: band(0.7, 1.0, 1.4),
			TypicalOwnerHours: 45, Volatility: VolatilityLow,
		},
	}
}

func band(low, mid, high float64) MultipleRange {
	return MultipleRange{Low: low, Mid: mid, High: high}
}

// builtinAliases is the alias table in precedence order. Specific phrases
// come before the generic fragments they contain ("sports bar" before
// "bar", "vet clinic" before "clinic"); reordering changes how free text
// is classified.
func builtinAliases() []Alias {
	return []Alias{
		{Text: "hair salon", Key: "salon_spa"},
		{Text: "beauty salon", Key: "salon_spa"},
		{Text: "nail salon", Key: "salon_spa"},
		{Text: "barber shop", Key: "salon_spa"},
		{Text: "barbershop", Key: "salon_spa"},
		{Text: "day spa", Key: "salon_spa"},
		{Text: "med spa", Key: "salon_spa"},
		{Text: "salon", Key: "salon_spa"},
		{Text: "hvac", Key: "hvac"},
		{Text: "heating and air", Key: "hvac"},
		{Text: "heating & air", Key: "hvac"},
		{Text: "air conditioning", Key: "hvac"},
		{Text: "heating", Key: "hvac"},
		{Text: "plumbing", Key: "plumbing"},
		{Text: "plumber", Key: "plumbing"},
		{Text: "electrical contractor", Key: "electrical"},
		{Text: "electrician", Key: "electrical"},
		{Text: "electrical", Key: "electrical"},
		{Text: "roofing", Key: "roofing"},
		{Text: "roofer", Key: "roofing"},
		{Text: "landscaping", Key: "landscaping"},
		{Text: "lawn care", Key: "landscaping"},
		{Text: "tree service", Key: "landscaping"},
		{Text: "janitorial", Key: "cleaning_services"},
		{Text: "commercial cleaning", Key: "cleaning_services"},
		{Text: "maid service", Key: "cleaning_services"},
		{Text: "cleaning", Key: "cleaning_services"},
		{Text: "pest control", Key: "pest_control"},
		{Text: "exterminator", Key: "pest_control"},
		{Text: "auto repair", Key: "auto_repair"},
		{Text: "auto body", Key: "auto_repair"},
		{Text: "collision repair", Key: "auto_repair"},
		{Text: "mechanic", Key: "auto_repair"},
		{Text: "car wash", Key: "car_wash"},
		{Text: "coffee shop", Key: "coffee_shop"},
		{Text: "coffee", Key: "coffee_shop"},
		{Text: "cafe", Key: "coffee_shop"},
		{Text: "bakery", Key: "bakery"},
		{Text: "food truck", Key: "food_truck"},
		{Text: "quick service", Key: "franchise_food"},
		{Text: "fast food", Key: "franchise_food"},
		{Text: "franchise restaurant", Key: "franchise_food"},
		{Text: "pizzeria", Key: "restaurant"},
		{Text: "pizza", Key: "restaurant"},
		{Text: "bar and grill", Key: "restaurant"},
		{Text: "bar & grill", Key: "restaurant"},
		{Text: "restaurant", Key: "restaurant"},
		{Text: "diner", Key: "restaurant"},
		{Text: "catering", Key: "restaurant"},
		{Text: "sports bar", Key: "bar_nightclub"},
		{Text: "nightclub", Key: "bar_nightclub"},
		{Text: "tavern", Key: "bar_nightclub"},
		{Text: "brewery", Key: "bar_nightclub"},
		{Text: "bar", Key: "bar_nightclub"},
		{Text: "convenience store", Key: "convenience_store"},
		{Text: "c-store", Key: "convenience_store"},
		{Text: "liquor store", Key: "liquor_store"},
		{Text: "wine shop", Key: "liquor_store"},
		{Text: "liquor", Key: "liquor_store"},
		{Text: "gas station", Key: "gas_station"},
		{Text: "fuel station", Key: "gas_station"},
		{Text: "e-commerce", Key: "ecommerce"},
		{Text: "ecommerce", Key: "ecommerce"},
		{Text: "online store", Key: "ecommerce"},
		{Text: "amazon fba", Key: "ecommerce"},
		{Text: "shopify", Key: "ecommerce"},
		{Text: "software as a service", Key: "saas"},
		{Text: "saas", Key: "saas"},
		{Text: "software", Key: "saas"},
		{Text: "managed it", Key: "it_services"},
		{Text: "it services", Key: "it_services"},
		{Text: "it support", Key: "it_services"},
		{Text: "msp", Key: "it_services"},
		{Text: "web design", Key: "digital_agency"},
		{Text: "digital marketing", Key: "digital_agency"},
		{Text: "marketing agency", Key: "digital_agency"},
		{Text: "advertising agency", Key: "digital_agency"},
		{Text: "accounting", Key: "accounting_firm"},
		{Text: "bookkeeping", Key: "accounting_firm"},
		{Text: "tax preparation", Key: "accounting_firm"},
		{Text: "cpa", Key: "accounting_firm"},
		{Text: "insurance agency", Key: "insurance_agency"},
		{Text: "insurance", Key: "insurance_agency"},
		{Text: "staffing", Key: "staffing_agency"},
		{Text: "recruiting", Key: "staffing_agency"},
		{Text: "consulting", Key: "consulting"},
		{Text: "veterinary", Key: "veterinary"},
		{Text: "animal hospital", Key: "veterinary"},
		{Text: "vet clinic", Key: "veterinary"},
		{Text: "dental", Key: "dental_practice"},
		{Text: "dentist", Key: "dental_practice"},
		{Text: "orthodont", Key: "dental_practice"},
		{Text: "medical practice", Key: "medical_practice"},
		{Text: "physician", Key: "medical_practice"},
		{Text: "clinic", Key: "medical_practice"},
		{Text: "home health", Key: "home_health"},
		{Text: "home care", Key: "home_health"},
		{Text: "senior care", Key: "home_health"},
		{Text: "pharmacy", Key: "pharmacy"},
		{Text: "yoga studio", Key: "fitness_center"},
		{Text: "crossfit", Key: "fitness_center"},
		{Text: "fitness", Key: "fitness_center"},
		{Text: "gym", Key: "fitness_center"},
		{Text: "daycare", Key: "childcare"},
		{Text: "day care", Key: "childcare"},
		{Text: "child care", Key: "childcare"},
		{Text: "childcare", Key: "childcare"},
		{Text: "preschool", Key: "childcare"},
		{Text: "tutoring", Key: "education_tutoring"},
		{Text: "learning center", Key: "education_tutoring"},
		{Text: "education", Key: "education_tutoring"},
		{Text: "machine shop", Key: "manufacturing"},
		{Text: "fabrication", Key: "manufacturing"},
		{Text: "manufacturing", Key: "manufacturing"},
		{Text: "wholesale", Key: "distribution_wholesale"},
		{Text: "distribution", Key: "distribution_wholesale"},
		{Text: "distributor", Key: "distribution_wholesale"},
		{Text: "general contractor", Key: "construction"},
		{Text: "remodeling", Key: "construction"},
		{Text: "construction", Key: "construction"},
		{Text: "trucking", Key: "trucking_logistics"},
		{Text: "freight", Key: "trucking_logistics"},
		{Text: "logistics", Key: "trucking_logistics"},
		{Text: "courier", Key: "trucking_logistics"},
		{Text: "property management", Key: "property_management"},
		{Text: "real estate", Key: "real_estate_brokerage"},
		{Text: "printing", Key: "printing_signs"},
		{Text: "sign shop", Key: "printing_signs"},
		{Text: "hotel", Key: "hotel_motel"},
		{Text: "motel", Key: "hotel_motel"},
		{Text: "funeral", Key: "funeral_home"},
		{Text: "laundromat", Key: "laundromat"},
		{Text: "dry clean", Key: "laundromat"},
		{Text: "security system", Key: "security_alarm"},
		{Text: "alarm monitoring", Key: "security_alarm"},
		{Text: "boutique", Key: "retail_general"},
		{Text: "retail", Key: "retail_general"},
	}
}
