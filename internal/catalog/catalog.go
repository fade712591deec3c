package catalog

type Category string

const (
	CategoryCar  Category = "car"
	CategoryHome Category = "home"
)

type Service struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	Features      []string `json:"features"`
	Image         string   `json:"image"`
}

const unsplash = "https://images.unsplash.com/"

var services = []Service{
	{
		ID: "1", Category: CategoryCar, Title: "Exterior Wash & Wax",
		Description:   "Complete exterior cleaning with premium hand wash, foam bath, and protective wax coating.",
		Price:         "From $41",
		OriginalPrice: "$59",
		Discount:      "30% OFF",
		Features:      []string{"Hand Wash", "Foam Bath", "Tire Shine", "Protective Wax", "Window Cleaning"},
		Image:         unsplash + "photo-1624884269715-70759892cd29",
	},
	{
		ID: "2", Category: CategoryCar, Title: "Interior Detailing",
		Description:   "Deep cleaning of interior surfaces, upholstery shampooing, and air freshening.",
		Price:         "From $55",
		OriginalPrice: "$79",
		Discount:      "30% OFF",
		Features:      []string{"Vacuum & Shampoo", "Dashboard Polish", "Leather Conditioning", "Window Interior", "Air Freshening"},
		Image:         unsplash + "photo-1656077885491-3922185f3932",
	},
	{
		ID: "3", Category: CategoryCar, Title: "Premium Full Detail",
		Description:   "Complete interior and exterior detailing for showroom-quality results.",
		Price:         "From $104",
		OriginalPrice: "$149",
		Discount:      "30% OFF",
		Features:      []string{"Full Exterior Detail", "Complete Interior Detail", "Engine Bay Cleaning", "Paint Correction", "Ceramic Coating"},
		Image:         unsplash + "photo-1620584898989-d39f7f9ed1b7",
	},
	{
		ID: "4", Category: CategoryCar, Title: "Engine Bay Cleaning",
		Description:   "Professional cleaning and degreasing of engine compartment.",
		Price:         "From $34",
		OriginalPrice: "$49",
		Discount:      "30% OFF",
		Features:      []string{"Engine Degreasing", "Component Cleaning", "Protective Dressing", "Detailed Inspection"},
		Image:         unsplash + "photo-1761312834150-4beefff097a7",
	},
	{
		ID: "5", Category: CategoryHome, Title: "House Cleaning Service",
		Description:   "Professional maid service for one-time or recurring cleanings. Book by package or by the hour.",
		Price:         "From $62",
		OriginalPrice: "$89",
		Discount:      "30% OFF",
		Features:      []string{"One-Time or Recurring", "Flexible Scheduling", "Professional Maids", "All Room Cleaning", "Kitchen & Bathrooms"},
		Image:         unsplash + "photo-1686178827149-6d55c72d81df",
	},
	{
		ID: "6", Category: CategoryHome, Title: "Move In/Move Out Cleaning",
		Description:   "Move in/out cleaning for tenants, landlords, and sellers.",
		Price:         "From $118",
		OriginalPrice: "$169",
		Discount:      "30% OFF",
		Features:      []string{"Deep Clean All Areas", "Cabinet Interior Clean", "Appliance Cleaning", "Baseboard & Trim", "Window & Sill Cleaning"},
		Image:         "https://images.pexels.com/photos/2724749/pexels-photo-2724749.jpeg",
	},
	{
		ID: "7", Category: CategoryHome, Title: "Deep Cleaning Service",
		Description:   "Deep cleaning that removes dust and hard-to-reach grime.",
		Price:         "From $104",
		OriginalPrice: "$149",
		Discount:      "30% OFF",
		Features:      []string{"Top-to-Bottom Clean", "Behind Appliances", "Inside Cabinets", "Grout & Tile Scrubbing", "Baseboards & Vents"},
		Image:         unsplash + "photo-1628177142898-93e36e4e3a50",
	},
	{
		ID: "8", Category: CategoryHome, Title: "Post Renovation Cleaning",
		Description:   "Fast and thorough post-construction cleaning to remove dust and debris.",
		Price:         "From $139",
		OriginalPrice: "$199",
		Discount:      "30% OFF",
		Features:      []string{"Construction Dust Removal", "Paint & Adhesive Cleanup", "Window & Frame Cleaning", "Floor Deep Clean", "Final Inspection"},
		Image:         unsplash + "photo-1581578731548-c64695cc6952",
	},
	{
		ID: "9", Category: CategoryHome, Title: "AirBnB Cleaning Service",
		Description:   "Airbnb cleaning to refresh your rental and impress every guest.",
		Price:         "From $48",
		OriginalPrice: "$69",
		Discount:      "30% OFF",
		Features:      []string{"Quick Turnaround", "Linen Change", "Restocking Supplies", "Guest-Ready Standards", "Same-Day Service"},
		Image:         unsplash + "photo-1522708323590-d24dbb6b0267",
	},
	{
		ID: "10", Category: CategoryHome, Title: "Office Cleaning Service",
		Description: "Reliable office and commercial cleaning to maintain a clean, professional workspace.",
		Price:       "Custom Quote",
		Discount:    "30% OFF",
		Features:    []string{"Regular Schedule", "After-Hours Service", "Desk & Surface Cleaning", "Restroom Sanitation", "Break Room Cleaning"},
		Image:       unsplash + "photo-1497366216548-37526070297c",
	},
	{
		ID: "11", Category: CategoryHome, Title: "Seniors Cleaning Service",
		Description:   "Gentle, caring, and reliable cleaning for homes with seniors or aging parents.",
		Price:         "From $55",
		OriginalPrice: "$79",
		Discount:      "30% OFF",
		Features:      []string{"Compassionate Staff", "Safety-Focused", "Light Housekeeping", "Regular Visits", "Trusted Professionals"},
		Image:         unsplash + "photo-1576765608535-5f04d1e3f289",
	},
	{
		ID: "12", Category: CategoryHome, Title: "Weekly/Bi-Weekly/Monthly Cleaning",
		Description:   "Recurring home cleaning, customized to your schedule and preferences.",
		Price:         "From $48/visit",
		OriginalPrice: "$69/visit",
		Discount:      "30% OFF",
		Features:      []string{"Flexible Schedule", "Same Cleaner", "Customized Checklist", "Discounted Rates", "Consistent Results"},
		Image:         unsplash + "photo-1747659354528-b534bcd71aea",
	},
}

// All returns a copy of the catalog in display order.
func All() []Service {
	out := make([]Service, len(services))
	for i, s := range services {
		out[i] = s.clone()
	}
	return out
}

func ByCategory(c Category) []Service {
	var out []Service
	for _, s := range services {
		if s.Category == c {
			out = append(out, s.clone())
		}
	}
	return out
}

func Find(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Service{}, false
}

// ResolveName maps a catalog id to its title. Anything that is not a known
// id is treated as a free-text service name and returned unchanged.
func ResolveName(ref string) string {
	if s, ok := Find(ref); ok {
		return s.Title
	}
	return ref
}

func (s Service) clone() Service {
	s.Features = append([]string(nil), s.Features...)
	return s
}
