package catalog

// seedColleges is the standard directory shipped with the app.
func seedColleges() []College {
	return []College{
		{
			ID:              "30",
			Name:            "Indian Institute of Technology, Madras",
			Location:        "Chennai, Tamil Nadu",
			Country:         "India",
			Ranking:         1,
			Fees:            "₹2.15 Lakhs/Year",
			Exams:           []string{"JEE Advanced"},
			Image:           "https://images.unsplash.com/photo-1562774053-701939374585?auto=format&fit=crop&q=80&w=1000",
			Description:     "Consistently ranked #1 in India by NIRF. Known for its lush green campus carved out of a natural forest.",
			Tags:            []string{"Engineering", "Research", "Govt", "Top Tier"},
			Accreditation:   "NAAC A++",
			EstablishedYear: 1959,
		},
		{
			ID:              "90",
			Name:            "National Institute of Design (NID)",
			Location:        "Ahmedabad, Gujarat",
			Country:         "India",
			Ranking:         1,
			Fees:            "₹3.5 Lakhs/Year",
			Exams:           []string{"NID DAT"},
			Image:           "https://images.unsplash.com/photo-1513364776144-60967b0f800f?auto=format&fit=crop&q=80&w=1000",
			Description:     "The premier institute for design education. Known for its world-class focus on industrial, communication, and textile design.",
			Tags:            []string{"Art", "Design", "Creative", "Govt"},
			Accreditation:   "Institute of National Importance",
			EstablishedYear: 1961,
		},
		{
			ID:              "91",
			Name:            "Sir J.J. School of Art",
			Location:        "Mumbai, Maharashtra",
			Country:         "India",
			Ranking:         2,
			Fees:            "₹50,000/Year",
			Exams:           []string{"MAH AAC CET"},
			Image:           "https://images.unsplash.com/photo-1547826039-bfc35e0f1ea8?auto=format&fit=crop&q=80&w=1000",
			Description:     "One of the oldest and most prestigious art institutions in India, offering specialized courses in Fine Arts and Sculpture.",
			Tags:            []string{"Art", "Fine Arts", "Classic", "Govt"},
			EstablishedYear: 1857,
		},
		{
			ID:              "100",
			Name:            "Punjab Agricultural University (PAU)",
			Location:        "Ludhiana, Punjab",
			Country:         "India",
			Ranking:         1,
			Fees:            "₹85,000/Year",
			Exams:           []string{"PAU Entrance"},
			Image:           "https://images.unsplash.com/photo-1500382017468-9049fed747ef?auto=format&fit=crop&q=80&w=1000",
			Description:     "A global leader in agricultural research, PAU played a pivotal role in the Green Revolution of India.",
			Tags:            []string{"Agriculture", "Research", "B.Sc Agriculture", "Govt"},
			EstablishedYear: 1962,
		},
		{
			ID:              "101",
			Name:            "Tamil Nadu Agricultural University (TNAU)",
			Location:        "Coimbatore, Tamil Nadu",
			Country:         "India",
			Ranking:         2,
			Fees:            "₹60,000/Year",
			Exams:           []string{"TNAU UG Entrance"},
			Image:           "https://images.unsplash.com/photo-1523348837708-15d4a09cfac2?auto=format&fit=crop&q=80&w=1000",
			Description:     "A pioneer in the field of farm technology and crop management with extensive experimental fields.",
			Tags:            []string{"Agriculture", "Tech", "Farming", "Govt"},
			EstablishedYear: 1971,
		},
		{
			ID:              "50",
			Name:            "IGNOU - Online Division",
			Location:        "New Delhi, India",
			Country:         "India",
			Ranking:         1,
			Fees:            "₹12,000/Year",
			Exams:           []string{"Direct Admission"},
			Image:           "https://images.unsplash.com/photo-1501503060809-54bc97023d1b?auto=format&fit=crop&q=80&w=1000",
			Description:     "Offering recognized degrees worldwide through flexible online learning modules.",
			Tags:            []string{"Online", "Distance", "Govt", "Affordable"},
			EstablishedYear: 1985,
		},
		{
			ID:          "51",
			Name:        "Coursera x University of London (B.Sc CS)",
			Location:    "Remote/Global",
			Country:     "Abroad",
			Ranking:     5,
			Fees:        "₹1.5 Lakhs/Year",
			Exams:       []string{"English Proficiency"},
			Image:       "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?auto=format&fit=crop&q=80&w=1000",
			Description: "Earn a top-tier UK degree from anywhere in the world with flexible pacing and industry-ready skills.",
			Tags:        []string{"Online", "Global", "CS", "Industry Partner"},
		},
		{
			ID:          "3",
			Name:        "AIIMS",
			Location:    "New Delhi",
			Country:     "India",
			Ranking:     1,
			Fees:        "₹5,856/Total",
			Exams:       []string{"NEET"},
			Image:       "https://images.unsplash.com/photo-1538108149393-fbbd81895907?auto=format&fit=crop&q=80&w=1000",
			Description: "The All India Institute of Medical Sciences (AIIMS) New Delhi is the premier medical research public university and hospital based in New Delhi, India.",
			Tags:        []string{"Medical", "MBBS", "Govt", "Nursing"},
		},
	}
}
